// Package shape derives the buffer shapes shared by analysis and synthesis:
// frame counts, FFT sizes, bin counts and synthesis output lengths.
//
// Every consumer must use these functions rather than recomputing the
// formulas, otherwise F0, envelope and aperiodicity buffers drift apart.
//
// Frames are centred: frame i describes the signal around
// t = i * framePeriod, so the first frame sits at t = 0 and a signal of
// duration d yields floor(d / framePeriod) + 1 frames. Synthesis uses the
// same convention and renders up to and including the last frame centre.
package shape
