package engine

import (
	"errors"
	"slices"
	"testing"
)

type stubEngine struct {
	Engine
	name string
}

func (s *stubEngine) Name() string { return s.name }

func TestInitializeIsIdempotent(t *testing.T) {
	loads := 0
	Register("test-idempotent", func() (Engine, error) {
		loads++
		return &stubEngine{name: "test-idempotent"}, nil
	})

	a, err := Initialize("test-idempotent")
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	b, err := Initialize("test-idempotent")
	if err != nil {
		t.Fatalf("second Initialize() error = %v", err)
	}
	if a != b {
		t.Fatal("Initialize returned different instances")
	}
	if loads != 1 {
		t.Fatalf("loader ran %d times, want 1", loads)
	}
	if !slices.Contains(Names(), "test-idempotent") {
		t.Fatalf("Names() = %v, missing test-idempotent", Names())
	}
}

func TestInitializeUnknown(t *testing.T) {
	_, err := Initialize("no-such-engine")
	if !errors.Is(err, ErrEngineNotFound) {
		t.Fatalf("error = %v, want ErrEngineNotFound", err)
	}
	if !errors.Is(err, ErrEngineUnavailable) {
		t.Fatalf("error = %v, want ErrEngineUnavailable", err)
	}
}

func TestInitializeLoaderFailureIsRetried(t *testing.T) {
	cause := errors.New("library missing")
	fail := true
	Register("test-flaky", func() (Engine, error) {
		if fail {
			return nil, cause
		}
		return &stubEngine{name: "test-flaky"}, nil
	})

	_, err := Initialize("test-flaky")
	if !errors.Is(err, ErrEngineUnavailable) || !errors.Is(err, cause) {
		t.Fatalf("error = %v, want ErrEngineUnavailable wrapping the cause", err)
	}

	fail = false
	e, err := Initialize("test-flaky")
	if err != nil {
		t.Fatalf("retry error = %v", err)
	}
	if e.Name() != "test-flaky" {
		t.Fatalf("Name() = %q", e.Name())
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", func() (Engine, error) { return &stubEngine{}, nil })
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate Register did not panic")
		}
	}()
	Register("test-dup", func() (Engine, error) { return &stubEngine{}, nil })
}
