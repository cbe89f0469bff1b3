package analysis

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-world/internal/testutil"
	"github.com/cwbudde/algo-world/vocoder"
)

func TestRunReleasesOnError(t *testing.T) {
	var got *Session
	boom := errors.New("stop")
	err := Run(newFakeEngine(), mustSignal(t, testutil.Silence(800), 16000), func(s *Session) error {
		got = s
		return boom
	})
	if err != boom {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if got.State() != StateReleased {
		t.Fatalf("state = %s, want released", got.State())
	}
}

func TestRunReleasesOnPanic(t *testing.T) {
	var got *Session
	func() {
		defer func() { _ = recover() }()
		_ = Run(newFakeEngine(), mustSignal(t, testutil.Silence(800), 16000), func(s *Session) error {
			got = s
			panic("boom")
		})
	}()
	if got == nil || got.State() != StateReleased {
		t.Fatal("session not released after panic")
	}
}

func TestAnalyze(t *testing.T) {
	cfg := vocoder.DefaultConfig()
	cfg.FramePeriod = 10
	res, err := Analyze(newFakeEngine(), mustSignal(t, testutil.Silence(16000), 16000), cfg)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.F0.Len() != 101 || res.Envelope.Rows != 101 || res.Aperiodicity.Rows != 101 {
		t.Fatalf("frames: f0=%d sp=%d ap=%d", res.F0.Len(), res.Envelope.Rows, res.Aperiodicity.Rows)
	}
	if res.SampleRate != 16000 || res.FramePeriod != 10 || res.Engine != "fake" {
		t.Fatalf("meta: %d %v %q", res.SampleRate, res.FramePeriod, res.Engine)
	}

	cfg.Q1 = 0
	cfg.FramePeriod = -1
	if _, err := Analyze(newFakeEngine(), mustSignal(t, nil, 16000), cfg); !errors.Is(err, vocoder.ErrInvalidOption) {
		t.Fatalf("err = %v, want ErrInvalidOption", err)
	}
}
