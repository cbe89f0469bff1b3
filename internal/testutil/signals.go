// Package testutil holds signal fixtures and tolerance assertions shared by
// the vocoder tests.
package testutil

import (
	"math"
	"math/rand/v2"
)

// Sine returns length samples of amplitude*sin(2*pi*freq*t) at sampleRate.
func Sine(freqHz float64, sampleRate int, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / float64(sampleRate)
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Silence returns length zero samples.
func Silence(length int) []float64 {
	return make([]float64, length)
}

// Noise returns reproducible uniform noise in [-amplitude, amplitude].
func Noise(seed uint64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Vowel returns a harmonic-rich voiced signal with fundamental f0: the sum of
// the first harmonics with 1/h amplitude rolloff, scaled to peak below 0.5.
func Vowel(f0 float64, sampleRate int, length int) []float64 {
	out := make([]float64, length)
	nyq := float64(sampleRate) / 2
	for h := 1; float64(h)*f0 < nyq && h <= 20; h++ {
		step := 2 * math.Pi * f0 * float64(h) / float64(sampleRate)
		amp := 0.15 / float64(h)
		for i := range out {
			out[i] += amp * math.Sin(step*float64(i))
		}
	}
	return out
}

// Seconds converts a duration in seconds to a sample count.
func Seconds(sec float64, sampleRate int) int {
	return int(sec * float64(sampleRate))
}
