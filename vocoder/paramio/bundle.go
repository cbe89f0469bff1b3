package paramio

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/analysis"
	"github.com/cwbudde/algo-world/vocoder/shape"
)

// BundleVersion is written into every bundle.
const BundleVersion = 1

// Bundle is the msgpack form of an analysis result. Matrices are stored
// row-major with Frames rows and Bins columns.
type Bundle struct {
	Version      int       `msgpack:"version"`
	SampleRate   int       `msgpack:"sample_rate"`
	FramePeriod  float64   `msgpack:"frame_period"`
	FFTSize      int       `msgpack:"fft_size"`
	Frames       int       `msgpack:"frames"`
	Bins         int       `msgpack:"bins"`
	F0           []float64 `msgpack:"f0"`
	TimeAxis     []float64 `msgpack:"time_axis"`
	Envelope     []float64 `msgpack:"envelope"`
	Aperiodicity []float64 `msgpack:"aperiodicity"`
}

// NewBundle captures res.
func NewBundle(res *analysis.Result) Bundle {
	return Bundle{
		Version:      BundleVersion,
		SampleRate:   res.SampleRate,
		FramePeriod:  res.FramePeriod,
		FFTSize:      res.Envelope.FFTSize,
		Frames:       res.F0.Len(),
		Bins:         res.Envelope.Cols,
		F0:           res.F0.F0,
		TimeAxis:     res.F0.TimeAxis,
		Envelope:     res.Envelope.Data,
		Aperiodicity: res.Aperiodicity.Data,
	}
}

// Validate checks that the stored shapes agree.
func (b Bundle) Validate() error {
	if b.Version != BundleVersion {
		return fmt.Errorf("paramio: bundle version %d: %w", b.Version, ErrMalformedFile)
	}
	if b.SampleRate < 1 || !(b.FramePeriod > 0) {
		return fmt.Errorf("paramio: bundle rate=%d period=%v: %w", b.SampleRate, b.FramePeriod, ErrMalformedFile)
	}
	n := b.Frames
	if n < 1 || len(b.F0) != n || len(b.TimeAxis) != n {
		return fmt.Errorf("paramio: bundle has %d frames, f0=%d time axis=%d: %w",
			n, len(b.F0), len(b.TimeAxis), vocoder.ErrShapeMismatch)
	}
	if b.Bins != shape.Bins(b.FFTSize) || len(b.Envelope) != n*b.Bins || len(b.Aperiodicity) != n*b.Bins {
		return fmt.Errorf("paramio: bundle matrices do not match %dx%d (fft %d): %w",
			n, b.Bins, b.FFTSize, vocoder.ErrShapeMismatch)
	}
	return nil
}

// Result converts the bundle back to an analysis result.
func (b Bundle) Result() (*analysis.Result, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &analysis.Result{
		F0: vocoder.F0Contour{F0: b.F0, TimeAxis: b.TimeAxis},
		Envelope: vocoder.SpectralEnvelope{
			Matrix:  vocoder.Matrix{Rows: b.Frames, Cols: b.Bins, Data: b.Envelope},
			FFTSize: b.FFTSize,
		},
		Aperiodicity: vocoder.Aperiodicity{
			Matrix:  vocoder.Matrix{Rows: b.Frames, Cols: b.Bins, Data: b.Aperiodicity},
			FFTSize: b.FFTSize,
		},
		SampleRate:  b.SampleRate,
		FramePeriod: b.FramePeriod,
	}, nil
}

// WriteBundle encodes b as msgpack.
func WriteBundle(w io.Writer, b Bundle) error {
	if err := msgpack.NewEncoder(w).Encode(&b); err != nil {
		return fmt.Errorf("paramio: encode bundle: %w", err)
	}
	return nil
}

// ReadBundle decodes and validates a msgpack bundle.
func ReadBundle(r io.Reader) (Bundle, error) {
	var b Bundle
	if err := msgpack.NewDecoder(r).Decode(&b); err != nil {
		return Bundle{}, fmt.Errorf("paramio: decode bundle: %w", err)
	}
	if err := b.Validate(); err != nil {
		return Bundle{}, err
	}
	return b, nil
}
