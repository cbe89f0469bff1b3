package analysis

import (
	"fmt"

	"github.com/cwbudde/algo-world/internal/arena"
	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/engine"
	"github.com/cwbudde/algo-world/vocoder/pcm"
	"github.com/cwbudde/algo-world/vocoder/shape"
)

// Session holds one signal and the intermediate results of its analysis.
type Session struct {
	eng  engine.Engine
	pool *arena.Pool

	state       State
	framePeriod float64
	sampleRate  int

	buf      *arena.Arena
	signal   arena.Span
	timeAxis arena.Span
	f0       arena.Span
	frames   int
	fftSize  int
}

// NewSession returns an empty session bound to eng.
func NewSession(eng engine.Engine, opts ...Option) (*Session, error) {
	if eng == nil {
		return nil, fmt.Errorf("analysis: %w", engine.ErrEngineUnavailable)
	}
	cfg := applyOptions(opts)
	if err := vocoder.ValidateFramePeriod(cfg.framePeriod); err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	return &Session{
		eng:         eng,
		pool:        cfg.pool,
		framePeriod: cfg.framePeriod,
	}, nil
}

// Open creates a session and loads sig into it.
func Open(eng engine.Engine, sig vocoder.Signal, opts ...Option) (*Session, error) {
	s, err := NewSession(eng, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Load(sig); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

// Load copies sig into the session arena.
func (s *Session) Load(sig vocoder.Signal) error {
	if s.state != StateEmpty {
		return fmt.Errorf("analysis: load in state %s: %w", s.state, vocoder.ErrInvalidState)
	}
	if sig.IsZero() {
		return fmt.Errorf("analysis: signal has no sample rate: %w", vocoder.ErrMalformedAudio)
	}
	if err := shape.ValidateAnalysis(sig.SampleRate(), sig.Len(), s.framePeriod); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}

	frames := shape.FrameCount(sig.SampleRate(), sig.Len(), s.framePeriod)
	s.buf = s.pool.Get(sig.Len() + 3*frames)
	s.signal = s.buf.Alloc(sig.Len())
	sig.CopyTo(s.buf.Slice(s.signal))
	s.sampleRate = sig.SampleRate()
	s.state = StateLoaded
	return nil
}

// LoadPCM decodes 16-bit little-endian mono PCM and loads it.
func (s *Session) LoadPCM(data []byte, f pcm.Format) error {
	if s.state != StateEmpty {
		return fmt.Errorf("analysis: load in state %s: %w", s.state, vocoder.ErrInvalidState)
	}
	sig, err := pcm.Decode(data, f)
	if err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	return s.Load(sig)
}

// SetFramePeriod changes the analysis hop. It is only allowed before F0 is
// extracted.
func (s *Session) SetFramePeriod(ms float64) error {
	if s.state != StateEmpty && s.state != StateLoaded {
		return fmt.Errorf("analysis: set frame period in state %s: %w", s.state, vocoder.ErrInvalidState)
	}
	if err := vocoder.ValidateFramePeriod(ms); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	s.framePeriod = ms
	return nil
}

// FramePeriod returns the analysis hop in milliseconds.
func (s *Session) FramePeriod() float64 { return s.framePeriod }

// SampleRate returns the rate of the loaded signal, or 0 before Load.
func (s *Session) SampleRate() int { return s.sampleRate }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Engine returns the engine the session drives.
func (s *Session) Engine() engine.Engine { return s.eng }

// FrameCount returns the number of analysis frames of the loaded signal, or
// 0 when no signal is loaded.
func (s *Session) FrameCount() int {
	switch s.state {
	case StateLoaded:
		return shape.FrameCount(s.sampleRate, s.signal.Len, s.framePeriod)
	case StateF0Ready, StateF0Discarded:
		return s.frames
	default:
		return 0
	}
}

// FFTSize returns the transform length pinned by the first spectral stage,
// or 0 before one has run.
func (s *Session) FFTSize() int { return s.fftSize }

// ExtractF0 runs pitch detection and refinement. With retain the contour is
// kept for the spectral stages; otherwise its storage is released at once.
// The returned contour is a copy in both cases. When the engine fails the
// session stays Loaded and the engine error is returned as is.
func (s *Session) ExtractF0(opts vocoder.AnalysisOptions, retain bool) (vocoder.F0Contour, error) {
	if s.state != StateLoaded {
		return vocoder.F0Contour{}, fmt.Errorf("analysis: extract F0 in state %s: %w", s.state, vocoder.ErrInvalidState)
	}
	if err := opts.Validate(); err != nil {
		return vocoder.F0Contour{}, fmt.Errorf("analysis: %w", err)
	}

	frames := shape.FrameCount(s.sampleRate, s.signal.Len, s.framePeriod)
	if n := s.eng.FrameCountForPitch(s.sampleRate, s.signal.Len, s.framePeriod); n != frames {
		return vocoder.F0Contour{}, fmt.Errorf("analysis: engine %s reports %d frames, want %d: %w",
			s.eng.Name(), n, frames, vocoder.ErrShapeMismatch)
	}

	mark := s.buf.Mark()
	timeAxis := s.buf.Alloc(frames)
	refined := s.buf.Alloc(frames)
	scratch := s.buf.Mark()
	raw := s.buf.Alloc(frames)

	x := s.buf.Slice(s.signal)
	ta := s.buf.Slice(timeAxis)
	f0Raw := s.buf.Slice(raw)
	f0 := s.buf.Slice(refined)

	popt := engine.PitchOptions{
		FramePeriod:  s.framePeriod,
		Speed:        opts.Speed,
		F0Floor:      opts.F0Floor,
		F0Ceil:       opts.F0Ceil,
		AllowedRange: opts.F0AllowedRange,
	}
	if err := s.eng.DetectPitch(x, s.sampleRate, popt, ta, f0Raw); err != nil {
		s.buf.Rewind(mark)
		return vocoder.F0Contour{}, err
	}
	if err := s.eng.RefinePitch(x, s.sampleRate, ta, f0Raw, f0); err != nil {
		s.buf.Rewind(mark)
		return vocoder.F0Contour{}, err
	}

	out := vocoder.F0Contour{
		F0:       append([]float64(nil), f0...),
		TimeAxis: append([]float64(nil), ta...),
	}
	s.frames = frames
	if retain {
		s.buf.Rewind(scratch)
		s.timeAxis, s.f0 = timeAxis, refined
		s.state = StateF0Ready
	} else {
		s.buf.Rewind(mark)
		s.state = StateF0Discarded
	}
	return out, nil
}

// ExtractSpectralEnvelope computes the smoothed spectral envelope of every
// frame from the retained F0 contour.
func (s *Session) ExtractSpectralEnvelope(opts vocoder.AnalysisOptions) (vocoder.SpectralEnvelope, error) {
	if err := s.requireF0("extract spectral envelope"); err != nil {
		return vocoder.SpectralEnvelope{}, err
	}
	if err := opts.Validate(); err != nil {
		return vocoder.SpectralEnvelope{}, fmt.Errorf("analysis: %w", err)
	}

	eopt := engine.EnvelopeOptions{Q1: opts.Q1, F0Floor: opts.F0Floor}
	fftSize, err := s.spectralFFTSize(opts.F0Floor)
	if err != nil {
		return vocoder.SpectralEnvelope{}, err
	}
	if n := s.eng.FFTSizeForEnvelope(s.sampleRate, eopt); n != fftSize {
		return vocoder.SpectralEnvelope{}, fmt.Errorf("analysis: engine %s reports fft size %d, want %d: %w",
			s.eng.Name(), n, fftSize, vocoder.ErrShapeMismatch)
	}

	m := vocoder.NewMatrix(s.frames, shape.Bins(fftSize))
	err = s.eng.ComputeEnvelope(s.buf.Slice(s.signal), s.sampleRate,
		s.buf.Slice(s.timeAxis), s.buf.Slice(s.f0), eopt, m.RowViews())
	if err != nil {
		return vocoder.SpectralEnvelope{}, err
	}
	s.fftSize = fftSize
	return vocoder.SpectralEnvelope{Matrix: *m, FFTSize: fftSize}, nil
}

// ExtractAperiodicity computes the band aperiodicity of every frame from the
// retained F0 contour.
func (s *Session) ExtractAperiodicity(opts vocoder.AnalysisOptions) (vocoder.Aperiodicity, error) {
	if err := s.requireF0("extract aperiodicity"); err != nil {
		return vocoder.Aperiodicity{}, err
	}
	if err := opts.Validate(); err != nil {
		return vocoder.Aperiodicity{}, fmt.Errorf("analysis: %w", err)
	}

	fftSize, err := s.spectralFFTSize(opts.F0Floor)
	if err != nil {
		return vocoder.Aperiodicity{}, err
	}

	m := vocoder.NewMatrix(s.frames, shape.Bins(fftSize))
	aopt := engine.AperiodicityOptions{Threshold: opts.AperiodicityThreshold}
	err = s.eng.ComputeAperiodicity(s.buf.Slice(s.signal), s.sampleRate,
		s.buf.Slice(s.timeAxis), s.buf.Slice(s.f0), fftSize, aopt, m.RowViews())
	if err != nil {
		return vocoder.Aperiodicity{}, err
	}
	s.fftSize = fftSize
	return vocoder.Aperiodicity{Matrix: *m, FFTSize: fftSize}, nil
}

func (s *Session) requireF0(op string) error {
	switch s.state {
	case StateF0Ready:
		return nil
	case StateLoaded, StateF0Discarded:
		return fmt.Errorf("analysis: %s in state %s: %w", op, s.state, vocoder.ErrMissingDependency)
	default:
		return fmt.Errorf("analysis: %s in state %s: %w", op, s.state, vocoder.ErrInvalidState)
	}
}

// spectralFFTSize derives the transform length for f0Floor and checks it
// against the size fixed by an earlier spectral stage. The caller commits it
// to s.fftSize once the engine succeeds.
func (s *Session) spectralFFTSize(f0Floor float64) (int, error) {
	if err := shape.ValidateSpectral(s.sampleRate, f0Floor); err != nil {
		return 0, fmt.Errorf("analysis: %w", err)
	}
	n := shape.FFTSize(s.sampleRate, f0Floor)
	if s.fftSize != 0 && s.fftSize != n {
		return 0, fmt.Errorf("analysis: fft size %d differs from %d used by an earlier stage: %w",
			n, s.fftSize, vocoder.ErrShapeMismatch)
	}
	return n, nil
}

// Release returns the session storage to its pool. It is idempotent; every
// later analysis call fails with vocoder.ErrInvalidState.
func (s *Session) Release() {
	if s.state == StateReleased {
		return
	}
	if s.buf != nil {
		s.pool.Put(s.buf)
		s.buf = nil
	}
	s.signal, s.timeAxis, s.f0 = arena.Span{}, arena.Span{}, arena.Span{}
	s.state = StateReleased
}

// Close releases the session. It always returns nil.
func (s *Session) Close() error {
	s.Release()
	return nil
}
