package world

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-world/vocoder/engine"
	"github.com/cwbudde/algo-world/vocoder/shape"
)

// ComputeEnvelope fills out with one smoothed power spectrum per frame.
func (e *Engine) ComputeEnvelope(x []float64, sampleRate int, timeAxis, f0 []float64, opt engine.EnvelopeOptions, out [][]float64) error {
	if err := checkFrames(timeAxis, f0); err != nil {
		return err
	}
	if sampleRate < 1 || !(opt.F0Floor > 0) {
		return fmt.Errorf("world: invalid envelope options: rate=%d %+v", sampleRate, opt)
	}
	fftSize := e.FFTSizeForEnvelope(sampleRate, opt)
	bins := shape.Bins(fftSize)
	if err := checkRows(out, len(f0), bins); err != nil {
		return err
	}
	if len(f0) == 0 {
		return nil
	}

	plan, err := e.plans.get(fftSize)
	if err != nil {
		return err
	}
	defer e.plans.put(fftSize, plan)

	st := &envelopeState{
		fs:      float64(sampleRate),
		fftSize: fftSize,
		q1:      opt.Q1,
		plan:    plan,
		buf:     make([]complex128, fftSize),
		re:      make([]float64, bins),
		im:      make([]float64, bins),
		power:   make([]float64, bins),
	}
	for i := range f0 {
		cur := f0[i]
		if cur <= opt.F0Floor || cur >= st.fs/2 {
			cur = defaultF0
		}
		if err := st.frame(x, timeAxis[i], cur, out[i]); err != nil {
			return err
		}
	}
	return nil
}

type envelopeState struct {
	fs      float64
	fftSize int
	q1      float64
	plan    planFFT
	buf     []complex128
	re, im  []float64
	power   []float64
}

func (st *envelopeState) frame(x []float64, t, f0 float64, dst []float64) error {
	if err := st.windowedPower(x, t, f0); err != nil {
		return err
	}
	st.linearSmoothing(f0)
	return st.cepstralLiftering(f0, dst)
}

// windowedPower computes the power spectrum of a DC-free Hann segment of
// three pitch periods centred at t.
func (st *envelopeState) windowedPower(x []float64, t, f0 float64) error {
	half := int(math.Round(1.5 * st.fs / f0))
	win := hannAround(half)
	if len(win) > st.fftSize {
		half = (st.fftSize - 1) / 2
		win = hannAround(half)
	}
	normalizeEnergy(win)

	center := int(math.Round(t * st.fs))
	seg := make([]float64, len(win))
	var sum, wsum float64
	for j := range seg {
		if len(x) > 0 {
			seg[j] = x[clampIndex(center-half+j, len(x))]
		}
	}
	vecmath.MulBlockInPlace(seg, win)
	for j, v := range seg {
		sum += v
		wsum += win[j]
	}
	if wsum != 0 {
		dc := sum / wsum
		for j := range seg {
			seg[j] -= dc * win[j]
		}
	}

	for i := range st.buf {
		st.buf[i] = 0
	}
	for j, v := range seg {
		st.buf[j] = complex(v, 0)
	}
	if err := st.plan.Forward(st.buf, st.buf); err != nil {
		return fmt.Errorf("world: forward FFT failed: %w", err)
	}
	for k := range st.re {
		st.re[k] = real(st.buf[k])
		st.im[k] = imag(st.buf[k])
	}
	vecmath.Power(st.power, st.re, st.im)
	return nil
}

// linearSmoothing averages the power spectrum over a rectangular band of
// width 2/3 f0, mirroring at DC and Nyquist.
func (st *envelopeState) linearSmoothing(f0 float64) {
	bins := len(st.power)
	width := 2.0 / 3.0 * f0 * float64(st.fftSize) / st.fs
	halfWidth := int(math.Round(width / 2))
	if halfWidth < 1 {
		return
	}
	at := func(k int) float64 {
		for k < 0 || k >= bins {
			if k < 0 {
				k = -k
			}
			if k >= bins {
				k = 2*(bins-1) - k
			}
		}
		return st.power[k]
	}
	// cumulative sums over the mirrored range [-halfWidth, bins+halfWidth)
	ext := make([]float64, bins+2*halfWidth+1)
	for i := 1; i < len(ext); i++ {
		ext[i] = ext[i-1] + at(i-1-halfWidth)
	}
	n := float64(2*halfWidth + 1)
	for k := range bins {
		st.power[k] = (ext[k+2*halfWidth+1] - ext[k]) / n
	}
}

// cepstralLiftering applies the smoothing and Q1 compensation lifters and
// writes the envelope to dst.
func (st *envelopeState) cepstralLiftering(f0 float64, dst []float64) error {
	n := st.fftSize
	bins := len(st.power)
	for k := range bins {
		st.buf[k] = complex(mathLog(st.power[k]+safeGuardMinimum), 0)
	}
	for k := bins; k < n; k++ {
		st.buf[k] = st.buf[n-k]
	}
	if err := st.plan.Inverse(st.buf, st.buf); err != nil {
		return fmt.Errorf("world: inverse FFT failed: %w", err)
	}

	for i := range n {
		q := float64(min(i, n-i)) / st.fs
		lifter := 1.0
		if i != 0 {
			a := math.Pi * f0 * q
			lifter = math.Sin(a) / a
		}
		lifter *= (1 - 2*st.q1) + 2*st.q1*math.Cos(2*math.Pi*f0*q)
		st.buf[i] = complex(real(st.buf[i])*lifter, 0)
	}

	if err := st.plan.Forward(st.buf, st.buf); err != nil {
		return fmt.Errorf("world: forward FFT failed: %w", err)
	}
	for k := range dst {
		dst[k] = mathExp(real(st.buf[k]))
	}
	return nil
}
