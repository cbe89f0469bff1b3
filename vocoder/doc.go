// Package vocoder holds the data model shared by the analysis and synthesis
// packages: normalised signals, dense parameter matrices, the F0 contour, the
// analysis options and the error kinds returned across the module.
//
// The processing itself lives in sub-packages:
//
//   - [github.com/cwbudde/algo-world/vocoder/pcm] converts 16-bit PCM to
//     normalised samples and back.
//   - [github.com/cwbudde/algo-world/vocoder/shape] derives frame counts, FFT
//     sizes and synthesis lengths.
//   - [github.com/cwbudde/algo-world/vocoder/analysis] runs the staged
//     F0 / spectral envelope / aperiodicity extraction.
//   - [github.com/cwbudde/algo-world/vocoder/synthesis] turns parameters back
//     into a waveform.
//   - [github.com/cwbudde/algo-world/vocoder/engine] is the contract of the
//     numeric engine both sides delegate to.
package vocoder
