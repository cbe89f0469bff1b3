package paramio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/shape"
)

// ErrMalformedFile reports parameter data that cannot be parsed.
var ErrMalformedFile = errors.New("paramio: malformed parameter file")

// envelopeHeaderSize is the int32 sample rate plus the float64 frame period.
const envelopeHeaderSize = 4 + 8

// EnvelopeFile is the content of a .sp file.
type EnvelopeFile struct {
	SampleRate  int
	FramePeriod float64
	Envelope    vocoder.SpectralEnvelope
}

// WriteF0 writes f0 as raw float64 values.
func WriteF0(w io.Writer, f0 []float64) error {
	bw := bufio.NewWriter(w)
	if err := writeFloats(bw, f0); err != nil {
		return fmt.Errorf("paramio: write f0: %w", err)
	}
	return bw.Flush()
}

// ReadF0 reads a .f0 stream to its end.
func ReadF0(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("paramio: read f0: %w", err)
	}
	f0, err := decodeFloats(data)
	if err != nil {
		return nil, fmt.Errorf("paramio: f0: %w", err)
	}
	return f0, nil
}

// WriteEnvelope writes the .sp header followed by the envelope.
func WriteEnvelope(w io.Writer, f EnvelopeFile) error {
	if f.SampleRate < 1 || f.SampleRate > math.MaxInt32 {
		return fmt.Errorf("paramio: %w: sample rate %d", vocoder.ErrInvalidOption, f.SampleRate)
	}
	var hdr [envelopeHeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(f.SampleRate))
	binary.LittleEndian.PutUint64(hdr[4:12], math.Float64bits(f.FramePeriod))

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("paramio: write envelope header: %w", err)
	}
	if err := writeFloats(bw, f.Envelope.Data); err != nil {
		return fmt.Errorf("paramio: write envelope: %w", err)
	}
	return bw.Flush()
}

// ReadEnvelope reads a .sp stream holding frames rows.
func ReadEnvelope(r io.Reader, frames int) (EnvelopeFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return EnvelopeFile{}, fmt.Errorf("paramio: read envelope: %w", err)
	}
	if len(data) < envelopeHeaderSize {
		return EnvelopeFile{}, fmt.Errorf("paramio: envelope header truncated (%d bytes): %w", len(data), ErrMalformedFile)
	}
	rate := int(int32(binary.LittleEndian.Uint32(data[0:4])))
	period := math.Float64frombits(binary.LittleEndian.Uint64(data[4:12]))
	if rate < 1 || !(period > 0) {
		return EnvelopeFile{}, fmt.Errorf("paramio: envelope header rate=%d period=%v: %w", rate, period, ErrMalformedFile)
	}
	m, err := decodeMatrix(data[envelopeHeaderSize:], frames)
	if err != nil {
		return EnvelopeFile{}, fmt.Errorf("paramio: envelope: %w", err)
	}
	return EnvelopeFile{
		SampleRate:  rate,
		FramePeriod: period,
		Envelope:    vocoder.SpectralEnvelope{Matrix: *m, FFTSize: shape.FFTSizeFromBins(m.Cols)},
	}, nil
}

// WriteAperiodicity writes ap without a header.
func WriteAperiodicity(w io.Writer, ap vocoder.Aperiodicity) error {
	bw := bufio.NewWriter(w)
	if err := writeFloats(bw, ap.Data); err != nil {
		return fmt.Errorf("paramio: write aperiodicity: %w", err)
	}
	return bw.Flush()
}

// ReadAperiodicity reads a .ap stream holding frames rows.
func ReadAperiodicity(r io.Reader, frames int) (vocoder.Aperiodicity, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return vocoder.Aperiodicity{}, fmt.Errorf("paramio: read aperiodicity: %w", err)
	}
	m, err := decodeMatrix(data, frames)
	if err != nil {
		return vocoder.Aperiodicity{}, fmt.Errorf("paramio: aperiodicity: %w", err)
	}
	return vocoder.Aperiodicity{Matrix: *m, FFTSize: shape.FFTSizeFromBins(m.Cols)}, nil
}

func writeFloats(w io.Writer, v []float64) error {
	var b [8]byte
	for _, x := range v {
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(x))
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

func decodeFloats(data []byte) ([]float64, error) {
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("%d bytes is not a whole number of float64 values: %w", len(data), ErrMalformedFile)
	}
	out := make([]float64, len(data)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
	}
	return out, nil
}

func decodeMatrix(data []byte, frames int) (*vocoder.Matrix, error) {
	if frames < 1 {
		return nil, fmt.Errorf("frame count %d: %w", frames, vocoder.ErrShapeMismatch)
	}
	v, err := decodeFloats(data)
	if err != nil {
		return nil, err
	}
	if len(v)%frames != 0 || len(v)/frames < 2 {
		return nil, fmt.Errorf("%d values do not split into %d rows of at least 2 bins: %w",
			len(v), frames, vocoder.ErrShapeMismatch)
	}
	return &vocoder.Matrix{Rows: frames, Cols: len(v) / frames, Data: v}, nil
}
