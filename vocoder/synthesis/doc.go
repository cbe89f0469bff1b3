// Package synthesis renders a waveform from F0, spectral envelope and
// aperiodicity. A Synthesizer holds no state between calls.
package synthesis
