package analysis

import (
	"fmt"

	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/engine"
)

// Result bundles the three parameter sets of one signal.
type Result struct {
	F0           vocoder.F0Contour
	Envelope     vocoder.SpectralEnvelope
	Aperiodicity vocoder.Aperiodicity
	SampleRate   int
	FramePeriod  float64
	// Engine names the engine that produced the parameters. It is empty for
	// parameters read back from disk.
	Engine string
}

// Run opens a session on sig, calls fn with it and releases it on every
// exit path, including a panic in fn.
func Run(eng engine.Engine, sig vocoder.Signal, fn func(*Session) error, opts ...Option) error {
	s, err := Open(eng, sig, opts...)
	if err != nil {
		return err
	}
	defer s.Release()
	return fn(s)
}

// Analyze extracts F0, spectral envelope and aperiodicity of sig with the
// settings in cfg.
func Analyze(eng engine.Engine, sig vocoder.Signal, cfg vocoder.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	var res *Result
	err := Run(eng, sig, func(s *Session) error {
		f0, err := s.ExtractF0(cfg.AnalysisOptions, true)
		if err != nil {
			return err
		}
		sp, err := s.ExtractSpectralEnvelope(cfg.AnalysisOptions)
		if err != nil {
			return err
		}
		ap, err := s.ExtractAperiodicity(cfg.AnalysisOptions)
		if err != nil {
			return err
		}
		res = &Result{
			F0:           f0,
			Envelope:     sp,
			Aperiodicity: ap,
			SampleRate:   s.SampleRate(),
			FramePeriod:  s.FramePeriod(),
			Engine:       s.Engine().Name(),
		}
		return nil
	}, WithFramePeriod(cfg.FramePeriod))
	if err != nil {
		return nil, err
	}
	return res, nil
}
