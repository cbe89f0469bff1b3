package vocoder

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultAnalysisOptions(t *testing.T) {
	o := DefaultAnalysisOptions()
	want := AnalysisOptions{
		Speed:                 1,
		F0Floor:               71,
		F0Ceil:                800,
		F0AllowedRange:        0.1,
		Q1:                    -0.15,
		AperiodicityThreshold: 0.85,
	}
	if o != want {
		t.Fatalf("defaults = %+v, want %+v", o, want)
	}
	if err := o.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestApplyAnalysisOptions(t *testing.T) {
	o := ApplyAnalysisOptions(
		WithSpeed(2),
		WithF0Floor(60),
		WithF0Ceil(500),
		WithF0AllowedRange(0.2),
		WithQ1(0),
		WithAperiodicityThreshold(0.5),
		nil,
	)
	if o.Speed != 2 || o.F0Floor != 60 || o.F0Ceil != 500 || o.F0AllowedRange != 0.2 || o.Q1 != 0 || o.AperiodicityThreshold != 0.5 {
		t.Fatalf("options = %+v", o)
	}
}

func TestAnalysisOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opt  AnalysisOption
	}{
		{"speed", WithSpeed(0)},
		{"floor zero", WithF0Floor(0)},
		{"floor nan", WithF0Floor(math.NaN())},
		{"floor below minimum", WithF0Floor(0.5)},
		{"floor tiny", WithF0Floor(1e-12)},
		{"ceil below floor", WithF0Ceil(50)},
		{"ceil inf", WithF0Ceil(math.Inf(1))},
		{"allowed range", WithF0AllowedRange(0)},
		{"q1", WithQ1(math.NaN())},
		{"threshold", WithAperiodicityThreshold(1.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ApplyAnalysisOptions(tt.opt).Validate(); !errors.Is(err, ErrInvalidOption) {
				t.Fatalf("err = %v, want ErrInvalidOption", err)
			}
		})
	}
}

func TestValidateFramePeriod(t *testing.T) {
	for _, ms := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		if err := ValidateFramePeriod(ms); !errors.Is(err, ErrInvalidOption) {
			t.Fatalf("%v: err = %v", ms, err)
		}
	}
	if err := ValidateFramePeriod(0.5); err != nil {
		t.Fatal(err)
	}
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte("frame_period: 10\nf0_floor: 60\naperiodicity_threshold: 0.7\n"))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.FramePeriod != 10 || cfg.F0Floor != 60 || cfg.AperiodicityThreshold != 0.7 {
		t.Fatalf("config = %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.F0Ceil != DefaultF0Ceil || cfg.Q1 != DefaultQ1 || cfg.Speed != DefaultSpeed {
		t.Fatalf("defaults lost: %+v", cfg)
	}

	if _, err := ParseConfig([]byte("frame_period: -1\n")); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("invalid value: err = %v", err)
	}
	if _, err := ParseConfig([]byte("frame_period: [1, 2\n")); err == nil {
		t.Fatal("malformed YAML accepted")
	}
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.F0Ceil = 640
	data, err := cfg.YAML()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "f0_ceil: 640") {
		t.Fatalf("yaml = %s", data)
	}
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Fatalf("round trip = %+v, want %+v", got, cfg)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
