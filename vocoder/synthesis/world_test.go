package synthesis_test

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-world/internal/testutil"
	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/analysis"
	"github.com/cwbudde/algo-world/vocoder/engine"
	"github.com/cwbudde/algo-world/vocoder/engine/world"
	"github.com/cwbudde/algo-world/vocoder/synthesis"
)

func TestResynthesisWorld(t *testing.T) {
	eng := engine.MustInitialize(world.Name)
	sig, err := vocoder.NewSignal(testutil.Vowel(160, 16000, 8000), 16000)
	if err != nil {
		t.Fatal(err)
	}
	res, err := analysis.Analyze(eng, sig, vocoder.DefaultConfig())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	s, err := synthesis.New(eng)
	if err != nil {
		t.Fatal(err)
	}
	req := synthesis.FromResult(res)
	out, err := s.Synthesize(req)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if out.Len() != req.OutputLength() {
		t.Fatalf("len = %d, want %d", out.Len(), req.OutputLength())
	}
	samples := out.Samples()
	testutil.RequireFinite(t, samples)
	if testutil.RMS(samples) == 0 {
		t.Fatal("resynthesis is silent")
	}
}

func TestWorldRejectsOddBinCount(t *testing.T) {
	s, err := synthesis.New(engine.MustInitialize(world.Name))
	if err != nil {
		t.Fatal(err)
	}
	for _, cols := range []int{4, 6, 100} {
		req := synthesis.Request{
			F0:           make([]float64, 10),
			Envelope:     vocoder.NewMatrix(10, cols),
			Aperiodicity: vocoder.NewMatrix(10, cols),
			SampleRate:   16000,
			FramePeriod:  5,
		}
		if err := req.Validate(); err != nil {
			t.Fatalf("cols=%d: Validate: %v", cols, err)
		}
		if _, err := s.Synthesize(req); !errors.Is(err, vocoder.ErrShapeMismatch) {
			t.Fatalf("cols=%d: err = %v, want vocoder.ErrShapeMismatch", cols, err)
		}
	}
}
