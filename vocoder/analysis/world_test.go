package analysis_test

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-world/internal/testutil"
	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/analysis"
	"github.com/cwbudde/algo-world/vocoder/engine"
	"github.com/cwbudde/algo-world/vocoder/engine/world"
	"github.com/cwbudde/algo-world/vocoder/pcm"
)

func worldEngine(t *testing.T) engine.Engine {
	t.Helper()
	eng, err := engine.Initialize(world.Name)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return eng
}

func TestSilenceEndToEnd(t *testing.T) {
	s, err := analysis.NewSession(worldEngine(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Release()
	if err := s.LoadPCM(make([]byte, 2*16000), pcm.Mono16(16000)); err != nil {
		t.Fatal(err)
	}
	f0, err := s.ExtractF0(vocoder.DefaultAnalysisOptions(), true)
	if err != nil {
		t.Fatalf("ExtractF0: %v", err)
	}
	if f0.Len() != 201 {
		t.Fatalf("frames = %d, want 201", f0.Len())
	}
	testutil.RequireSliceNearlyEqual(t, f0.F0, make([]float64, 201), 1e-5)
}

func TestSineEndToEnd(t *testing.T) {
	data := pcm.EncodeSamples(testutil.Sine(200, 16000, 0.5, 16000))
	s, err := analysis.NewSession(worldEngine(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Release()
	if err := s.LoadPCM(data, pcm.Mono16(16000)); err != nil {
		t.Fatal(err)
	}
	f0, err := s.ExtractF0(vocoder.DefaultAnalysisOptions(), true)
	if err != nil {
		t.Fatalf("ExtractF0: %v", err)
	}
	if f0.VoicedCount() < f0.Len()*9/10 {
		t.Fatalf("voiced = %d of %d", f0.VoicedCount(), f0.Len())
	}
	for i, v := range f0.F0 {
		if v > 0 && math.Abs(v-200) > 1 {
			t.Fatalf("frame %d: f0 = %v, want 200 +/- 1", i, v)
		}
	}
}

func TestAnalyzeWorld(t *testing.T) {
	sig, err := vocoder.NewSignal(testutil.Vowel(140, 16000, 8000), 16000)
	if err != nil {
		t.Fatal(err)
	}
	res, err := analysis.Analyze(worldEngine(t), sig, vocoder.DefaultConfig())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Envelope.FFTSize != 1024 || res.Envelope.Cols != 513 {
		t.Fatalf("envelope: fft=%d cols=%d", res.Envelope.FFTSize, res.Envelope.Cols)
	}
	testutil.RequireInRange(t, res.Aperiodicity.Data, 0, 1)
	testutil.RequireFinite(t, res.Envelope.Data)
}
