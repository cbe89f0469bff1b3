package vocoder

import (
	"fmt"
	"time"
)

// Signal is an immutable sequence of normalised samples at a fixed sample
// rate. The zero value is an empty signal with no sample rate.
type Signal struct {
	samples    []float64
	sampleRate int
}

// NewSignal copies samples into a new Signal.
func NewSignal(samples []float64, sampleRate int) (Signal, error) {
	if sampleRate < 1 {
		return Signal{}, fmt.Errorf("%w: sample rate must be >= 1: %d", ErrInvalidOption, sampleRate)
	}
	s := make([]float64, len(samples))
	copy(s, samples)
	return Signal{samples: s, sampleRate: sampleRate}, nil
}

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.samples) }

// SampleRate returns the sample rate in Hz.
func (s Signal) SampleRate() int { return s.sampleRate }

// IsZero reports whether s is the zero Signal.
func (s Signal) IsZero() bool { return s.sampleRate == 0 }

// At returns sample i.
func (s Signal) At(i int) float64 { return s.samples[i] }

// Samples returns a copy of the samples.
func (s Signal) Samples() []float64 {
	out := make([]float64, len(s.samples))
	copy(out, s.samples)
	return out
}

// CopyTo copies the samples into dst and returns the number copied.
func (s Signal) CopyTo(dst []float64) int {
	return copy(dst, s.samples)
}

// Duration returns the signal duration.
func (s Signal) Duration() time.Duration {
	if s.sampleRate == 0 {
		return 0
	}
	return time.Duration(len(s.samples)) * time.Second / time.Duration(s.sampleRate)
}
