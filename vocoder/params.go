package vocoder

// F0Contour is the fundamental frequency per analysis frame together with the
// frame centre times. F0 is in Hz with 0 marking unvoiced frames; TimeAxis is
// in seconds. Both slices have the same length.
type F0Contour struct {
	F0       []float64
	TimeAxis []float64
}

// Len returns the number of frames.
func (c F0Contour) Len() int { return len(c.F0) }

// Voiced reports whether frame i carries a pitch.
func (c F0Contour) Voiced(i int) bool { return c.F0[i] > 0 }

// VoicedCount returns the number of voiced frames.
func (c F0Contour) VoicedCount() int {
	n := 0
	for _, v := range c.F0 {
		if v > 0 {
			n++
		}
	}
	return n
}

// SpectralEnvelope is the per-frame smoothed power spectrum with
// FFTSize/2+1 columns.
type SpectralEnvelope struct {
	Matrix
	FFTSize int
}

// Aperiodicity is the per-frame, per-bin ratio of aperiodic energy with
// FFTSize/2+1 columns.
type Aperiodicity struct {
	Matrix
	FFTSize int
}
