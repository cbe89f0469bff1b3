// Package paramio reads and writes vocoder parameters.
//
// Raw files store little-endian float64 values:
//
//	.f0  F0 per frame, no header
//	.sp  int32 sample rate, float64 frame period, then the envelope row-major
//	.ap  the aperiodicity row-major, no header
//
// Row counts are not stored; readers take the frame count from the .f0 file.
// A Bundle keeps all parameters of one analysis in a single msgpack file.
package paramio
