package shape

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/cwbudde/algo-world/vocoder"
)

// FrameCount returns the number of analysis frames for signalLength samples
// at sampleRate Hz with frames spaced framePeriodMs apart.
func FrameCount(sampleRate, signalLength int, framePeriodMs float64) int {
	return int(1000.0*float64(signalLength)/float64(sampleRate)/framePeriodMs) + 1
}

// MaxFFTSize is the longest spectral transform FFTSize may return for
// inputs accepted by ValidateSpectral.
const MaxFFTSize = 1 << 20

// FFTSize returns the transform length used by the spectral stages: the
// smallest power of two holding three periods of f0Floor, doubled. Inputs
// must pass ValidateSpectral.
func FFTSize(sampleRate int, f0Floor float64) int {
	return 1 << fftExponent(sampleRate, f0Floor)
}

func fftExponent(sampleRate int, f0Floor float64) int {
	return 1 + int(math.Log2(3.0*float64(sampleRate)/f0Floor+1.0))
}

// Bins returns the number of non-negative frequency bins of an FFT.
func Bins(fftSize int) int {
	return fftSize/2 + 1
}

// FFTSizeFromBins inverts Bins.
func FFTSizeFromBins(bins int) int {
	return 2 * (bins - 1)
}

// SynthesisLength returns the number of output samples rendered for
// frameCount frames. The last sample coincides with the centre of the last
// frame.
func SynthesisLength(frameCount int, framePeriodMs float64, sampleRate int) int {
	if frameCount <= 0 {
		return 0
	}
	return int(float64(frameCount-1)*framePeriodMs*float64(sampleRate)/1000.0) + 1
}

// TimeAxis returns the frame centre times in seconds.
func TimeAxis(frameCount int, framePeriodMs float64) []float64 {
	out := make([]float64, max(frameCount, 0))
	FillTimeAxis(out, framePeriodMs)
	return out
}

// FillTimeAxis writes frame centre times in seconds into dst.
func FillTimeAxis(dst []float64, framePeriodMs float64) {
	step := framePeriodMs / 1000.0
	for i := range dst {
		dst[i] = float64(i) * step
	}
}

// ValidateAnalysis checks the inputs of FrameCount.
func ValidateAnalysis(sampleRate, signalLength int, framePeriodMs float64) error {
	if sampleRate < 1 {
		return fmt.Errorf("%w: sample rate must be >= 1: %d", vocoder.ErrInvalidOption, sampleRate)
	}
	if signalLength < 0 {
		return fmt.Errorf("%w: signal length must be >= 0: %d", vocoder.ErrInvalidOption, signalLength)
	}
	return vocoder.ValidateFramePeriod(framePeriodMs)
}

// ValidateSpectral checks the inputs of FFTSize.
func ValidateSpectral(sampleRate int, f0Floor float64) error {
	if sampleRate < 1 {
		return fmt.Errorf("%w: sample rate must be >= 1: %d", vocoder.ErrInvalidOption, sampleRate)
	}
	if !(f0Floor > 0) || math.IsInf(f0Floor, 0) {
		return fmt.Errorf("%w: f0 floor must be > 0: %f", vocoder.ErrInvalidOption, f0Floor)
	}
	if fftExponent(sampleRate, f0Floor) > bits.TrailingZeros(MaxFFTSize) {
		return fmt.Errorf("%w: f0 floor %g Hz at %d Hz needs an fft longer than %d",
			vocoder.ErrInvalidOption, f0Floor, sampleRate, MaxFFTSize)
	}
	return nil
}
