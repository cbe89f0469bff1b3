package world

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-world/vocoder/shape"
)

// noiseSeed fixes the aperiodic excitation so synthesis is reproducible.
const noiseSeed = 0x5eed

// SynthesizeWaveform renders len(out) samples by pitch-synchronous
// overlap-add. Each pulse combines a zero-phase periodic response shaped by
// envelope*(1-ap^2) with white noise shaped by envelope*ap^2, using the
// parameters of the nearest frame.
func (e *Engine) SynthesizeWaveform(f0 []float64, envelope, aperiodicity [][]float64, fftLen int, framePeriodMs float64, sampleRate int, out []float64) error {
	bins := shape.Bins(fftLen)
	if fftLen < 4 || fftLen&(fftLen-1) != 0 {
		return fmt.Errorf("%w: fft length %d is not a power of two", errBufferShape, fftLen)
	}
	if err := checkRows(envelope, len(f0), bins); err != nil {
		return err
	}
	if err := checkRows(aperiodicity, len(f0), bins); err != nil {
		return err
	}
	if sampleRate < 1 || !(framePeriodMs > 0) {
		return fmt.Errorf("world: invalid synthesis timing: rate=%d period=%v", sampleRate, framePeriodMs)
	}
	clear(out)
	if len(f0) == 0 || len(out) == 0 {
		return nil
	}

	plan, err := e.plans.get(fftLen)
	if err != nil {
		return err
	}
	defer e.plans.put(fftLen, plan)

	st := &synthState{
		fftLen:   fftLen,
		plan:     plan,
		spectrum: make([]complex128, fftLen),
		noise:    make([]complex128, fftLen),
		response: make([]float64, fftLen),
		shaped:   make([]float64, fftLen),
		mag:      make([]float64, bins),
		rng:      rand.New(rand.NewPCG(noiseSeed, noiseSeed)),
	}

	fs := float64(sampleRate)
	frameSec := framePeriodMs / 1000
	last := len(f0) - 1
	for pos := 0.0; int(math.Round(pos*fs)) < len(out); {
		frame := min(max(int(math.Round(pos/frameSec)), 0), last)
		cur := f0[frame]
		voiced := cur > 0 && cur < fs/2
		if !voiced {
			cur = defaultF0
		}
		period := fs / cur
		pulse := int(math.Round(pos * fs))

		if err := st.pulse(envelope[frame], aperiodicity[frame], period, voiced); err != nil {
			return err
		}
		st.overlapAdd(out, pulse)
		pos += 1 / cur
	}
	return nil
}

type synthState struct {
	fftLen   int
	plan     planFFT
	spectrum []complex128
	noise    []complex128
	response []float64
	shaped   []float64
	mag      []float64
	rng      *rand.Rand
}

// pulse builds the response of one excitation period into st.response,
// centred at fftLen/2.
func (st *synthState) pulse(sp, ap []float64, period float64, voiced bool) error {
	n := st.fftLen
	bins := len(st.mag)
	clear(st.response)

	if voiced {
		for k := range bins {
			st.mag[k] = mathSqrt(max(sp[k]*(1-ap[k]*ap[k])*period, 0))
		}
		for k := range bins {
			st.spectrum[k] = complex(st.mag[k], 0)
		}
		for k := bins; k < n; k++ {
			st.spectrum[k] = st.spectrum[n-k]
		}
		if err := st.plan.Inverse(st.spectrum, st.spectrum); err != nil {
			return fmt.Errorf("world: inverse FFT failed: %w", err)
		}
		for i := range n {
			st.response[(i+n/2)%n] += real(st.spectrum[i])
		}
	}

	// Unit-variance noise spanning one period, shaped by sp*ap^2.
	length := min(max(int(math.Round(period)), 1), n)
	for i := range st.noise {
		st.noise[i] = 0
	}
	for i := range length {
		st.noise[i] = complex(st.rng.NormFloat64(), 0)
	}
	if err := st.plan.Forward(st.noise, st.noise); err != nil {
		return fmt.Errorf("world: forward FFT failed: %w", err)
	}
	for k := range bins {
		st.mag[k] = mathSqrt(max(sp[k], 0)) * ap[k]
	}
	for k := range bins {
		st.noise[k] *= complex(st.mag[k], 0)
	}
	for k := bins; k < n; k++ {
		st.noise[k] = complexConj(st.noise[n-k])
	}
	if err := st.plan.Inverse(st.noise, st.noise); err != nil {
		return fmt.Errorf("world: inverse FFT failed: %w", err)
	}
	for i := range n {
		st.shaped[(i+n/2)%n] = real(st.noise[i])
	}
	vecmath.AddBlockInPlace(st.response, st.shaped)
	return nil
}

// overlapAdd adds st.response to out with its centre at sample pulse.
func (st *synthState) overlapAdd(out []float64, pulse int) {
	start := pulse - st.fftLen/2
	lo := max(0, -start)
	hi := min(st.fftLen, len(out)-start)
	if lo >= hi {
		return
	}
	vecmath.AddBlockInPlace(out[start+lo:start+hi], st.response[lo:hi])
}

func complexConj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}
