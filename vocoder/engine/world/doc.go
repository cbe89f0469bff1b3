// Package world is a pure-Go reference implementation of the vocoder engine
// contract, modelled on the WORLD vocoder pipeline.
//
// The stages are simplified but keep WORLD's shapes and conventions:
//
//   - DetectPitch: per-frame normalised autocorrelation over three periods
//     of the lowest F0 (Boersma window correction), octave-cost peak picking
//     and contour fixing.
//   - RefinePitch: instantaneous frequency from the phase advance of a
//     single-bin Blackman-windowed DFT, two iterations.
//   - ComputeEnvelope: pitch-adaptive Hann window, linear smoothing over
//     2/3 F0 and cepstral smoothing plus Q1 compensation liftering.
//   - ComputeAperiodicity: spectral comparison of two windows one period
//     apart with fractional-delay compensation.
//   - SynthesizeWaveform: pitch-synchronous overlap-add of zero-phase
//     periodic responses and shaped noise.
//
// Importing the package registers the engine under [Name].
//
// Build with -tags fastmath to use algo-approx log/exp approximations in the
// spectral stages.
package world
