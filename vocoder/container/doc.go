// Package container moves 16-bit PCM between WAV files and pcm.Stream
// values, and converts sample rates before analysis.
package container
