package paramio

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/analysis"
	"github.com/cwbudde/algo-world/vocoder/shape"
)

// File extensions of the raw parameter set.
const (
	ExtF0           = ".f0"
	ExtEnvelope     = ".sp"
	ExtAperiodicity = ".ap"
	ExtBundle       = ".msgpack"
)

// SaveSet writes res to prefix.f0, prefix.sp and prefix.ap.
func SaveSet(prefix string, res *analysis.Result) error {
	if err := writeFile(prefix+ExtF0, func(w io.Writer) error {
		return WriteF0(w, res.F0.F0)
	}); err != nil {
		return err
	}
	if err := writeFile(prefix+ExtEnvelope, func(w io.Writer) error {
		return WriteEnvelope(w, EnvelopeFile{
			SampleRate:  res.SampleRate,
			FramePeriod: res.FramePeriod,
			Envelope:    res.Envelope,
		})
	}); err != nil {
		return err
	}
	return writeFile(prefix+ExtAperiodicity, func(w io.Writer) error {
		return WriteAperiodicity(w, res.Aperiodicity)
	})
}

// LoadSet reads the files written by SaveSet. The time axis is rebuilt from
// the frame period stored in the .sp header.
func LoadSet(prefix string) (*analysis.Result, error) {
	var (
		f0  []float64
		env EnvelopeFile
		ap  vocoder.Aperiodicity
	)
	if err := readFile(prefix+ExtF0, func(r io.Reader) (err error) {
		f0, err = ReadF0(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := readFile(prefix+ExtEnvelope, func(r io.Reader) (err error) {
		env, err = ReadEnvelope(r, len(f0))
		return err
	}); err != nil {
		return nil, err
	}
	if err := readFile(prefix+ExtAperiodicity, func(r io.Reader) (err error) {
		ap, err = ReadAperiodicity(r, len(f0))
		return err
	}); err != nil {
		return nil, err
	}
	if ap.Cols != env.Envelope.Cols {
		return nil, fmt.Errorf("paramio: %s: envelope has %d bins, aperiodicity has %d: %w",
			prefix, env.Envelope.Cols, ap.Cols, vocoder.ErrShapeMismatch)
	}

	return &analysis.Result{
		F0:           vocoder.F0Contour{F0: f0, TimeAxis: shape.TimeAxis(len(f0), env.FramePeriod)},
		Envelope:     env.Envelope,
		Aperiodicity: ap,
		SampleRate:   env.SampleRate,
		FramePeriod:  env.FramePeriod,
	}, nil
}

// SaveBundle writes res as a msgpack bundle to path.
func SaveBundle(path string, res *analysis.Result) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteBundle(w, NewBundle(res))
	})
}

// LoadBundle reads a msgpack bundle from path.
func LoadBundle(path string) (*analysis.Result, error) {
	var b Bundle
	if err := readFile(path, func(r io.Reader) (err error) {
		b, err = ReadBundle(r)
		return err
	}); err != nil {
		return nil, err
	}
	return b.Result()
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("paramio: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("paramio: %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("paramio: %w", err)
	}
	return nil
}

func readFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("paramio: %w", err)
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fmt.Errorf("paramio: %s: %w", path, err)
	}
	return nil
}
