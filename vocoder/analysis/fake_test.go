package analysis

import (
	"github.com/cwbudde/algo-world/vocoder/engine"
	"github.com/cwbudde/algo-world/vocoder/shape"
)

// fakeEngine records calls and fills buffers with recognisable constants.
type fakeEngine struct {
	calls map[string]int

	frameDelta int
	fftSize    int
	pitchErr   error
	refineErr  error
	envErr     error
	f0         float64
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{calls: make(map[string]int), f0: 120}
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) FrameCountForPitch(sampleRate, signalLength int, framePeriodMs float64) int {
	f.calls["FrameCountForPitch"]++
	return shape.FrameCount(sampleRate, signalLength, framePeriodMs) + f.frameDelta
}

func (f *fakeEngine) DetectPitch(x []float64, sampleRate int, opt engine.PitchOptions, timeAxis, f0 []float64) error {
	f.calls["DetectPitch"]++
	if f.pitchErr != nil {
		return f.pitchErr
	}
	shape.FillTimeAxis(timeAxis, opt.FramePeriod)
	for i := range f0 {
		f0[i] = f.f0 + 1
	}
	return nil
}

func (f *fakeEngine) RefinePitch(x []float64, sampleRate int, timeAxis, f0Raw, f0Refined []float64) error {
	f.calls["RefinePitch"]++
	if f.refineErr != nil {
		return f.refineErr
	}
	for i := range f0Raw {
		f0Refined[i] = f0Raw[i] - 1
	}
	return nil
}

func (f *fakeEngine) FFTSizeForEnvelope(sampleRate int, opt engine.EnvelopeOptions) int {
	if f.fftSize != 0 {
		return f.fftSize
	}
	return shape.FFTSize(sampleRate, opt.F0Floor)
}

func (f *fakeEngine) ComputeEnvelope(x []float64, sampleRate int, timeAxis, f0 []float64, opt engine.EnvelopeOptions, out [][]float64) error {
	f.calls["ComputeEnvelope"]++
	if f.envErr != nil {
		return f.envErr
	}
	for _, row := range out {
		for k := range row {
			row[k] = 1
		}
	}
	return nil
}

func (f *fakeEngine) ComputeAperiodicity(x []float64, sampleRate int, timeAxis, f0 []float64, fftSize int, opt engine.AperiodicityOptions, out [][]float64) error {
	f.calls["ComputeAperiodicity"]++
	for _, row := range out {
		for k := range row {
			row[k] = 0.5
		}
	}
	return nil
}

func (f *fakeEngine) SynthesizeWaveform(f0 []float64, envelope, aperiodicity [][]float64, fftLen int, framePeriodMs float64, sampleRate int, out []float64) error {
	f.calls["SynthesizeWaveform"]++
	return nil
}
