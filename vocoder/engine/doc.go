// Package engine defines the contract between the vocoder orchestration and
// the numeric engine that performs pitch detection, spectral analysis and
// waveform synthesis.
//
// Engines operate on flat caller-allocated buffers and never retain them.
// They are located by name through an explicit, idempotent [Initialize]
// call; implementations make themselves available with [Register].
package engine
