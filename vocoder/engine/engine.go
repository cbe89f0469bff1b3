package engine

// PitchOptions configures DetectPitch.
type PitchOptions struct {
	FramePeriod  float64 // ms
	Speed        int
	F0Floor      float64 // Hz
	F0Ceil       float64 // Hz
	AllowedRange float64
}

// EnvelopeOptions configures FFTSizeForEnvelope and ComputeEnvelope.
type EnvelopeOptions struct {
	Q1      float64
	F0Floor float64 // Hz
}

// AperiodicityOptions configures ComputeAperiodicity.
type AperiodicityOptions struct {
	Threshold float64
}

// Engine is the numeric back end. Output buffers are allocated by the caller
// with the shapes implied by the inputs: len(timeAxis) == len(f0) frames and
// rows of fftSize/2+1 bins. Implementations must report failures through the
// returned error and must not write partial results without one.
type Engine interface {
	// Name identifies the implementation.
	Name() string

	// FrameCountForPitch returns the number of frames DetectPitch emits.
	FrameCountForPitch(sampleRate, signalLength int, framePeriodMs float64) int

	// DetectPitch fills timeAxis (seconds) and the raw F0 estimate f0 (Hz).
	DetectPitch(x []float64, sampleRate int, opt PitchOptions, timeAxis, f0 []float64) error

	// RefinePitch refines f0Raw into f0Refined.
	RefinePitch(x []float64, sampleRate int, timeAxis, f0Raw, f0Refined []float64) error

	// FFTSizeForEnvelope returns the transform length of ComputeEnvelope.
	FFTSizeForEnvelope(sampleRate int, opt EnvelopeOptions) int

	// ComputeEnvelope fills out[frame][bin] with the spectral envelope.
	ComputeEnvelope(x []float64, sampleRate int, timeAxis, f0 []float64, opt EnvelopeOptions, out [][]float64) error

	// ComputeAperiodicity fills out[frame][bin] with the aperiodicity.
	ComputeAperiodicity(x []float64, sampleRate int, timeAxis, f0 []float64, fftSize int, opt AperiodicityOptions, out [][]float64) error

	// SynthesizeWaveform renders len(out) samples from the parameters.
	SynthesizeWaveform(f0 []float64, envelope, aperiodicity [][]float64, fftLen int, framePeriodMs float64, sampleRate int, out []float64) error
}
