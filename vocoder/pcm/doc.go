// Package pcm converts between packed 16-bit little-endian signed mono PCM
// and normalised floating-point signals.
//
// Decoding divides each sample by 32767. Encoding multiplies by 32767, rounds
// to nearest and clips to the int16 range. The legacy truncating policy is
// available through [WithRounding]; both policies differ by at most one
// quantisation step.
package pcm
