package world

import (
	"fmt"
	"math"
	"math/cmplx"
)

const (
	refineIterations = 2
	// refineTolerance bounds the relative correction applied to a raw
	// estimate; larger corrections are treated as failures.
	refineTolerance = 0.2
)

// RefinePitch refines each voiced raw estimate with the instantaneous
// frequency measured around the frame centre.
func (e *Engine) RefinePitch(x []float64, sampleRate int, timeAxis, f0Raw, f0Refined []float64) error {
	if err := checkFrames(timeAxis, f0Raw); err != nil {
		return err
	}
	if len(f0Refined) != len(f0Raw) {
		return fmt.Errorf("%w: refined buffer has %d frames, want %d", errBufferShape, len(f0Refined), len(f0Raw))
	}
	if sampleRate < 1 {
		return fmt.Errorf("world: invalid sample rate %d", sampleRate)
	}
	fs := float64(sampleRate)
	for i, raw := range f0Raw {
		f0Refined[i] = raw
		if raw <= 0 || raw >= fs/2 {
			continue
		}
		center := int(math.Round(timeAxis[i] * fs))
		f := raw
		ok := true
		for range refineIterations {
			next, valid := instantaneousFrequency(x, center, f, fs)
			if !valid {
				ok = false
				break
			}
			f = next
		}
		if ok && math.Abs(f-raw) <= refineTolerance*raw {
			f0Refined[i] = f
		}
	}
	return nil
}

// instantaneousFrequency estimates the frequency near f0 from the phase
// advance of a single-bin DFT over one period.
func instantaneousFrequency(x []float64, center int, f0, fs float64) (float64, bool) {
	period := fs / f0
	half := int(math.Round(1.5 * period))
	lag := max(int(math.Round(period)), 1)
	win := blackmanAround(half)
	size := len(win)
	if size+lag > len(x) {
		return 0, false
	}
	start := frameStart(center, half, len(x)-lag)
	if start < 0 {
		return 0, false
	}

	w := 2 * math.Pi * f0 / fs
	a := singleBin(x[start:start+size], win, w)
	b := singleBin(x[start+lag:start+lag+size], win, w)
	if cmplx.Abs(a) < 1e-12 || cmplx.Abs(b) < 1e-12 {
		return 0, false
	}

	expected := w * float64(lag)
	residual := wrapPhase(cmplx.Phase(b*cmplx.Conj(a)) - expected)
	return (w + residual/float64(lag)) * fs / (2 * math.Pi), true
}

// singleBin evaluates the windowed DFT of seg at angular frequency w.
func singleBin(seg, win []float64, w float64) complex128 {
	var re, im float64
	for n, v := range seg {
		s := v * win[n]
		sin, cos := math.Sincos(w * float64(n))
		re += s * cos
		im -= s * sin
	}
	return complex(re, im)
}

func wrapPhase(p float64) float64 {
	for p > math.Pi {
		p -= 2 * math.Pi
	}
	for p < -math.Pi {
		p += 2 * math.Pi
	}
	return p
}
