package synthesis

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/analysis"
	"github.com/cwbudde/algo-world/vocoder/engine"
	"github.com/cwbudde/algo-world/vocoder/pcm"
	"github.com/cwbudde/algo-world/vocoder/shape"
)

// Request carries the parameters of one synthesis call. Envelope and
// Aperiodicity have one row per F0 frame and FFTSize/2+1 columns.
type Request struct {
	F0           []float64
	Envelope     *vocoder.Matrix
	Aperiodicity *vocoder.Matrix
	SampleRate   int
	FramePeriod  float64 // ms
}

// FromResult builds a request that resynthesises an analysis result.
func FromResult(res *analysis.Result) Request {
	return Request{
		F0:           res.F0.F0,
		Envelope:     &res.Envelope.Matrix,
		Aperiodicity: &res.Aperiodicity.Matrix,
		SampleRate:   res.SampleRate,
		FramePeriod:  res.FramePeriod,
	}
}

// Synthesizer renders requests with an engine.
type Synthesizer struct {
	eng engine.Engine
}

// New returns a Synthesizer bound to eng.
func New(eng engine.Engine) (*Synthesizer, error) {
	if eng == nil {
		return nil, fmt.Errorf("synthesis: %w", engine.ErrEngineUnavailable)
	}
	return &Synthesizer{eng: eng}, nil
}

// Validate checks req without touching the engine.
func (r Request) Validate() error {
	n := len(r.F0)
	if n == 0 {
		return fmt.Errorf("synthesis: empty F0 contour: %w", vocoder.ErrShapeMismatch)
	}
	if r.Envelope == nil || r.Aperiodicity == nil {
		return fmt.Errorf("synthesis: missing envelope or aperiodicity: %w", vocoder.ErrShapeMismatch)
	}
	if r.Envelope.Rows != n || r.Aperiodicity.Rows != n {
		return fmt.Errorf("synthesis: %d F0 frames, envelope has %d rows, aperiodicity has %d: %w",
			n, r.Envelope.Rows, r.Aperiodicity.Rows, vocoder.ErrShapeMismatch)
	}
	if r.Envelope.Cols != r.Aperiodicity.Cols {
		return fmt.Errorf("synthesis: envelope has %d bins, aperiodicity has %d: %w",
			r.Envelope.Cols, r.Aperiodicity.Cols, vocoder.ErrShapeMismatch)
	}
	if r.Envelope.Cols < 2 {
		return fmt.Errorf("synthesis: need at least 2 bins, got %d: %w", r.Envelope.Cols, vocoder.ErrShapeMismatch)
	}
	if len(r.Envelope.Data) != n*r.Envelope.Cols || len(r.Aperiodicity.Data) != n*r.Aperiodicity.Cols {
		return fmt.Errorf("synthesis: matrix data does not match its shape: %w", vocoder.ErrShapeMismatch)
	}
	if r.SampleRate < 1 {
		return fmt.Errorf("synthesis: %w: sample rate must be >= 1: %d", vocoder.ErrInvalidOption, r.SampleRate)
	}
	if err := vocoder.ValidateFramePeriod(r.FramePeriod); err != nil {
		return fmt.Errorf("synthesis: %w", err)
	}
	for i, v := range r.F0 {
		if !(v >= 0) || math.IsInf(v, 0) {
			return fmt.Errorf("synthesis: %w: f0[%d] = %v", vocoder.ErrInvalidOption, i, v)
		}
	}
	return nil
}

// OutputLength returns the number of samples Synthesize produces for req.
func (r Request) OutputLength() int {
	return shape.SynthesisLength(len(r.F0), r.FramePeriod, r.SampleRate)
}

// Synthesize validates req and renders it. Engine errors are returned as
// is.
func (s *Synthesizer) Synthesize(req Request) (vocoder.Signal, error) {
	if err := req.Validate(); err != nil {
		return vocoder.Signal{}, err
	}
	fftLen := shape.FFTSizeFromBins(req.Envelope.Cols)
	out := make([]float64, req.OutputLength())
	err := s.eng.SynthesizeWaveform(req.F0, req.Envelope.RowViews(), req.Aperiodicity.RowViews(),
		fftLen, req.FramePeriod, req.SampleRate, out)
	if err != nil {
		return vocoder.Signal{}, err
	}
	return vocoder.NewSignal(out, req.SampleRate)
}

// SynthesizePCM renders req as 16-bit mono PCM.
func (s *Synthesizer) SynthesizePCM(req Request, opts ...pcm.Option) (pcm.Stream, error) {
	sig, err := s.Synthesize(req)
	if err != nil {
		return pcm.Stream{}, err
	}
	return pcm.EncodeStream(sig, opts...), nil
}
