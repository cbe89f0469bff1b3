package pcm

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cwbudde/algo-world/vocoder"
)

// Rounding selects how scaled samples are converted to integers.
type Rounding int

const (
	// RoundNearest rounds half away from zero. This is the default.
	RoundNearest Rounding = iota
	// RoundTruncate truncates toward zero like a plain integer cast.
	RoundTruncate
)

// String returns the policy name.
func (r Rounding) String() string {
	switch r {
	case RoundNearest:
		return "nearest"
	case RoundTruncate:
		return "truncate"
	default:
		return "unknown"
	}
}

type config struct {
	rounding Rounding
}

// Option configures encoding.
type Option func(*config)

// WithRounding selects the rounding policy used by the encoders.
func WithRounding(r Rounding) Option {
	return func(c *config) {
		c.rounding = r
	}
}

func applyOptions(opts []Option) config {
	cfg := config{rounding: RoundNearest}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Decode interprets data as little-endian int16 mono samples in format f.
func Decode(data []byte, f Format) (vocoder.Signal, error) {
	if err := f.Validate(); err != nil {
		return vocoder.Signal{}, err
	}
	if len(data)%2 != 0 {
		return vocoder.Signal{}, fmt.Errorf("%w: odd byte count %d for 16-bit samples", vocoder.ErrMalformedAudio, len(data))
	}
	samples := DecodeSamples(data)
	return vocoder.NewSignal(samples, f.SampleRate)
}

// DecodeSamples converts packed little-endian int16 data to normalised
// samples. A trailing odd byte is ignored.
func DecodeSamples(data []byte) []float64 {
	n := len(data) / 2
	out := make([]float64, n)
	for i := range out {
		v := int16(binary.LittleEndian.Uint16(data[2*i:]))
		out[i] = float64(v) / Scale
	}
	return out
}

// DecodeStream decodes a Stream.
func DecodeStream(s Stream) (vocoder.Signal, error) {
	return Decode(s.Data, s.Format)
}

// Encode converts a signal to packed little-endian int16 data.
func Encode(sig vocoder.Signal, opts ...Option) []byte {
	return EncodeSamples(sig.Samples(), opts...)
}

// EncodeStream converts a signal to a mono 16-bit Stream at its own rate.
func EncodeStream(sig vocoder.Signal, opts ...Option) Stream {
	return Stream{
		Format: Mono16(sig.SampleRate()),
		Data:   Encode(sig, opts...),
	}
}

// EncodeSamples converts normalised samples to packed little-endian int16
// data. Values outside the representable range clip; NaN encodes as 0.
func EncodeSamples(samples []float64, opts ...Option) []byte {
	cfg := applyOptions(opts)
	out := make([]byte, 2*len(samples))
	for i, x := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(Quantize(x, cfg.rounding)))
	}
	return out
}

// Quantize scales x by 32767 and converts it to int16 under policy r,
// clipping to [-32768, 32767].
func Quantize(x float64, r Rounding) int16 {
	if math.IsNaN(x) {
		return 0
	}
	v := x * Scale
	if r == RoundTruncate {
		v = math.Trunc(v)
	} else {
		v = math.Round(v)
	}
	switch {
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}
	return int16(v)
}
