package analysis_test

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/analysis"
	"github.com/cwbudde/algo-world/vocoder/engine"
	"github.com/cwbudde/algo-world/vocoder/engine/world"
)

func ExampleRun() {
	eng := engine.MustInitialize(world.Name)
	sig, _ := vocoder.NewSignal(make([]float64, 16000), 16000)

	err := analysis.Run(eng, sig, func(s *analysis.Session) error {
		opts := vocoder.DefaultAnalysisOptions()
		f0, err := s.ExtractF0(opts, false)
		if err != nil {
			return err
		}
		fmt.Println(f0.Len(), f0.VoicedCount(), s.State())

		_, err = s.ExtractSpectralEnvelope(opts)
		fmt.Println(errors.Is(err, vocoder.ErrMissingDependency))
		return nil
	})
	fmt.Println(err)
	// Output:
	// 201 0 f0-discarded
	// true
	// <nil>
}
