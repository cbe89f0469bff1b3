package world

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-world/vocoder/engine"
	"github.com/cwbudde/algo-world/vocoder/shape"
)

const (
	// voicingThreshold is the minimum corrected autocorrelation of a voiced
	// frame.
	voicingThreshold = 0.5
	// octaveTolerance is the fraction of the strongest peak a shorter lag
	// must reach to be preferred over it.
	octaveTolerance = 0.9
	// decimationTaps is the half length of the anti-alias filter per unit of
	// decimation.
	decimationTaps = 16
	// silenceRMS is the frame level below which no pitch is reported.
	silenceRMS = 1e-5
)

// DetectPitch fills timeAxis and the raw F0 estimate.
func (e *Engine) DetectPitch(x []float64, sampleRate int, opt engine.PitchOptions, timeAxis, f0 []float64) error {
	if err := checkFrames(timeAxis, f0); err != nil {
		return err
	}
	if sampleRate < 1 || !(opt.FramePeriod > 0) || !(opt.F0Floor > 0) || !(opt.F0Ceil > opt.F0Floor) {
		return fmt.Errorf("world: invalid pitch options: rate=%d %+v", sampleRate, opt)
	}
	shape.FillTimeAxis(timeAxis, opt.FramePeriod)
	clear(f0)
	if len(x) == 0 || len(f0) == 0 {
		return nil
	}

	speed := max(opt.Speed, 1)
	xd := decimate(x, speed)
	fs := float64(sampleRate) / float64(speed)

	minLag := max(int(math.Floor(fs/opt.F0Ceil)), 2)
	maxLag := int(math.Ceil(fs / opt.F0Floor))
	if maxLag <= minLag+1 {
		return fmt.Errorf("world: pitch range %.1f-%.1f Hz is empty at %.0f Hz", opt.F0Floor, opt.F0Ceil, fs)
	}

	half := (3*maxLag + 1) / 2
	win := hannAround(half)
	segLen := len(win)
	fftSize := nextPowerOf2(2 * segLen)

	plan, err := e.plans.get(fftSize)
	if err != nil {
		return err
	}
	defer e.plans.put(fftSize, plan)

	buf := make([]complex128, fftSize)
	winAC, err := autocorrelate(plan, buf, win, maxLag+1)
	if err != nil {
		return err
	}

	seg := make([]float64, segLen)
	for i, t := range timeAxis {
		center := int(math.Round(t * fs))
		start := frameStart(center, half, len(xd))
		if !fillSegment(seg, xd, start) {
			continue
		}
		vecmath.MulBlockInPlace(seg, win)

		ac, err := autocorrelate(plan, buf, seg, maxLag+1)
		if err != nil {
			return err
		}
		f0[i] = pickPitch(ac, winAC, minLag, maxLag, fs)
	}

	fixContour(f0, opt.AllowedRange)
	return nil
}

// decimate low-pass filters x below the new Nyquist rate and keeps every
// speed-th sample. The filter is a Blackman windowed sinc centred on each
// kept sample, so output i stays aligned with input i*speed.
func decimate(x []float64, speed int) []float64 {
	if speed <= 1 {
		return x
	}
	h := lowPass(0.4/float64(speed), decimationTaps*speed)
	half := len(h) / 2
	out := make([]float64, (len(x)+speed-1)/speed)
	for i := range out {
		c := i * speed
		lo := max(c-half, 0)
		hi := min(c+half+1, len(x))
		var s float64
		for k := lo; k < hi; k++ {
			s += h[k-c+half] * x[k]
		}
		out[i] = s
	}
	return out
}

// lowPass returns a unity-gain FIR of 2*half+1 taps with cutoff fc in cycles
// per sample.
func lowPass(fc float64, half int) []float64 {
	h := blackmanAround(half)
	var sum float64
	for k := range h {
		t := float64(k - half)
		v := 2 * fc
		if t != 0 {
			v = math.Sin(2*math.Pi*fc*t) / (math.Pi * t)
		}
		h[k] *= v
		sum += h[k]
	}
	for k := range h {
		h[k] /= sum
	}
	return h
}

// frameStart places a window of 2*half+1 samples around center, shifted
// inward so it stays inside signals that are long enough to hold it.
func frameStart(center, half, n int) int {
	size := 2*half + 1
	start := center - half
	if size > n {
		return start
	}
	if start < 0 {
		return 0
	}
	if start+size > n {
		return n - size
	}
	return start
}

// fillSegment copies x[start:start+len(seg)] into seg with zero padding,
// removes the mean and reports whether the frame carries signal energy.
func fillSegment(seg, x []float64, start int) bool {
	var sum float64
	for j := range seg {
		k := start + j
		if k >= 0 && k < len(x) {
			seg[j] = x[k]
		} else {
			seg[j] = 0
		}
		sum += seg[j]
	}
	mean := sum / float64(len(seg))
	var energy float64
	for j := range seg {
		seg[j] -= mean
		energy += seg[j] * seg[j]
	}
	return math.Sqrt(energy/float64(len(seg))) >= silenceRMS
}

// autocorrelate returns the first lags values of the autocorrelation of s,
// normalised to 1 at lag 0.
func autocorrelate(plan planFFT, buf []complex128, s []float64, lags int) ([]float64, error) {
	for i := range buf {
		buf[i] = 0
	}
	for i, v := range s {
		buf[i] = complex(v, 0)
	}
	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("world: forward FFT failed: %w", err)
	}
	for i, c := range buf {
		buf[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}
	if err := plan.Inverse(buf, buf); err != nil {
		return nil, fmt.Errorf("world: inverse FFT failed: %w", err)
	}
	out := make([]float64, lags)
	r0 := real(buf[0])
	if r0 <= 0 {
		return out, nil
	}
	for i := range out {
		out[i] = real(buf[i]) / r0
	}
	return out, nil
}

// pickPitch returns the frequency of the shortest-lag corrected
// autocorrelation peak in [minLag, maxLag] whose interpolated height is
// within octaveTolerance of the strongest one, or 0 for unvoiced frames.
func pickPitch(ac, winAC []float64, minLag, maxLag int, fs float64) float64 {
	r := func(lag int) float64 {
		if winAC[lag] <= 1e-6 {
			return 0
		}
		return ac[lag] / winAC[lag]
	}

	type peak struct{ lag, height float64 }
	var peaks []peak
	best := math.Inf(-1)
	for lag := minLag; lag < maxLag; lag++ {
		a, b, c := r(lag-1), r(lag), r(lag+1)
		if b < a || b < c {
			continue
		}
		d := parabolicOffset(a, b, c)
		p := peak{lag: float64(lag) + d, height: b - 0.25*(a-c)*d}
		peaks = append(peaks, p)
		best = max(best, p.height)
	}
	for _, p := range peaks {
		if p.height < octaveTolerance*best {
			continue
		}
		if p.height < voicingThreshold || p.lag <= 0 {
			return 0
		}
		return fs / p.lag
	}
	return 0
}

// parabolicOffset returns the vertex offset of the parabola through three
// equally spaced points.
func parabolicOffset(a, b, c float64) float64 {
	den := a - 2*b + c
	if den == 0 {
		return 0
	}
	d := 0.5 * (a - c) / den
	if d > 0.5 || d < -0.5 {
		return 0
	}
	return d
}

// fixContour drops isolated frames whose F0 jumps by more than allowed
// relative to both voiced neighbours, then single voiced frames surrounded by
// unvoiced ones.
func fixContour(f0 []float64, allowed float64) {
	n := len(f0)
	if n < 3 {
		return
	}
	jump := func(a, b float64) bool {
		return math.Abs(a-b)/a > allowed
	}
	fixed := make([]float64, n)
	copy(fixed, f0)
	for i := 1; i < n-1; i++ {
		cur, prev, next := f0[i], f0[i-1], f0[i+1]
		if cur == 0 || prev == 0 || next == 0 {
			continue
		}
		if jump(cur, prev) && jump(cur, next) && !jump(prev, next) {
			fixed[i] = 0
		}
	}
	for i := range n {
		if fixed[i] == 0 {
			continue
		}
		left := i == 0 || fixed[i-1] == 0
		right := i == n-1 || fixed[i+1] == 0
		if left && right {
			fixed[i] = 0
		}
	}
	copy(f0, fixed)
}
