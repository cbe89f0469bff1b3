package world

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-world/vocoder/engine"
	"github.com/cwbudde/algo-world/vocoder/shape"
)

// ComputeAperiodicity fills out with per-bin aperiodicity in
// [0.001, 1-1e-12]. Unvoiced frames and frames whose periodicity falls below
// opt.Threshold are fully aperiodic.
func (e *Engine) ComputeAperiodicity(x []float64, sampleRate int, timeAxis, f0 []float64, fftSize int, opt engine.AperiodicityOptions, out [][]float64) error {
	if err := checkFrames(timeAxis, f0); err != nil {
		return err
	}
	if sampleRate < 1 {
		return fmt.Errorf("world: invalid sample rate %d", sampleRate)
	}
	if fftSize < 4 || fftSize&(fftSize-1) != 0 {
		return fmt.Errorf("%w: fft size %d is not a power of two", errBufferShape, fftSize)
	}
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

	st := &aperiodicityState{
		fs:      float64(sampleRate),
		fftSize: fftSize,
		plan:    plan,
		a:       make([]complex128, fftSize),
		b:       make([]complex128, fftSize),
		num:     make([]float64, bins),
		den:     make([]float64, bins),
	}
	for i := range f0 {
		row := out[i]
		if f0[i] <= 0 || f0[i] >= st.fs/2 {
			fill(row, maxAperiodicity)
			continue
		}
		periodic, err := st.frame(x, timeAxis[i], f0[i], opt.Threshold, row)
		if err != nil {
			return err
		}
		if !periodic {
			fill(row, maxAperiodicity)
		}
	}
	return nil
}

type aperiodicityState struct {
	fs       float64
	fftSize  int
	plan     planFFT
	a, b     []complex128
	num, den []float64
}

// frame compares the spectra of two Hann windows one period apart. It
// returns false when the frame periodicity is below threshold.
func (st *aperiodicityState) frame(x []float64, t, f0, threshold float64, dst []float64) (bool, error) {
	period := st.fs / f0
	lag := max(int(math.Round(period)), 1)
	delta := period - float64(lag)
	half := int(math.Round(1.5 * period))
	if 2*half+1 > st.fftSize {
		half = (st.fftSize - 1) / 2
	}
	win := hannAround(half)
	normalizeEnergy(win)

	center := int(math.Round(t*st.fs)) - lag/2
	if err := st.spectrum(st.a, x, center, win); err != nil {
		return false, err
	}
	if err := st.spectrum(st.b, x, center+lag, win); err != nil {
		return false, err
	}

	bins := len(dst)
	var cross, ea, eb float64
	for k := range bins {
		// x(n+lag) == x(n-delta) for a periodic signal; undo the fractional
		// delay before comparing.
		shift := cmplx.Exp(complex(0, 2*math.Pi*float64(k)*delta/float64(st.fftSize)))
		bk := st.b[k] * shift
		ak := st.a[k]
		d := ak - bk
		st.num[k] = real(d)*real(d) + imag(d)*imag(d)
		pa := real(ak)*real(ak) + imag(ak)*imag(ak)
		pb := real(bk)*real(bk) + imag(bk)*imag(bk)
		st.den[k] = pa + pb
		cross += real(ak * cmplx.Conj(bk))
		ea += pa
		eb += pb
	}
	if ea <= 0 || eb <= 0 {
		return false, nil
	}
	if cross/math.Sqrt(ea*eb) < threshold {
		return false, nil
	}

	bandHalf := max(int(math.Round(f0*float64(st.fftSize)/st.fs/2)), 1)
	smoothBand(st.num, bandHalf)
	smoothBand(st.den, bandHalf)
	for k := range dst {
		r := 0.5 * st.num[k] / (st.den[k] + safeGuardMinimum)
		dst[k] = min(max(mathSqrt(r), minAperiodicity), maxAperiodicity)
	}
	return true, nil
}

func (st *aperiodicityState) spectrum(dst []complex128, x []float64, center int, win []float64) error {
	half := len(win) / 2
	for i := range dst {
		dst[i] = 0
	}
	if len(x) == 0 {
		return nil
	}
	for j, w := range win {
		dst[j] = complex(x[clampIndex(center-half+j, len(x))]*w, 0)
	}
	if err := st.plan.Forward(dst, dst); err != nil {
		return fmt.Errorf("world: forward FFT failed: %w", err)
	}
	return nil
}

// smoothBand replaces v with its moving average over 2*half+1 bins, with
// the window truncated at the edges.
func smoothBand(v []float64, half int) {
	n := len(v)
	cum := make([]float64, n+1)
	for i, x := range v {
		cum[i+1] = cum[i] + x
	}
	for i := range v {
		lo := max(i-half, 0)
		hi := min(i+half+1, n)
		v[i] = (cum[hi] - cum[lo]) / float64(hi-lo)
	}
}

func fill(dst []float64, v float64) {
	for i := range dst {
		dst[i] = v
	}
}
