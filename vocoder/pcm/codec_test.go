package pcm

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-world/vocoder"
)

func TestDecodeLittleEndian(t *testing.T) {
	data := []byte{
		0x00, 0x00, // 0
		0xff, 0x7f, // 32767
		0x01, 0x80, // -32767
		0x00, 0x80, // -32768
		0x01, 0x00, // 1
	}
	sig, err := Decode(data, Mono16(16000))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := []float64{0, 1, -1, -32768.0 / 32767.0, 1.0 / 32767.0}
	if sig.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", sig.Len(), len(want))
	}
	for i, w := range want {
		if got := sig.At(i); got != w {
			t.Fatalf("sample %d = %v, want %v", i, got, w)
		}
	}
	if sig.SampleRate() != 16000 {
		t.Fatalf("SampleRate() = %d, want 16000", sig.SampleRate())
	}
}

func TestDecodeRejectsOddLength(t *testing.T) {
	_, err := Decode([]byte{0, 0, 1}, Mono16(16000))
	if !errors.Is(err, vocoder.ErrMalformedAudio) {
		t.Fatalf("Decode() error = %v, want ErrMalformedAudio", err)
	}
}

func TestDecodeRejectsUnsupportedFormat(t *testing.T) {
	tests := []struct {
		name string
		f    Format
	}{
		{"stereo", Format{SampleRate: 16000, Channels: 2, BitDepth: 16}},
		{"8-bit", Format{SampleRate: 16000, Channels: 1, BitDepth: 8}},
		{"24-bit", Format{SampleRate: 16000, Channels: 1, BitDepth: 24}},
		{"zero rate", Format{SampleRate: 0, Channels: 1, BitDepth: 16}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte{0, 0, 0, 0}, tt.f)
			if !errors.Is(err, vocoder.ErrMalformedAudio) {
				t.Fatalf("Decode() error = %v, want ErrMalformedAudio", err)
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	sig, err := Decode(nil, Mono16(8000))
	if err != nil {
		t.Fatalf("Decode(nil) error = %v", err)
	}
	if sig.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", sig.Len())
	}
}

func TestQuantizeRoundingPolicies(t *testing.T) {
	tests := []struct {
		x        float64
		nearest  int16
		truncate int16
	}{
		{0, 0, 0},
		{1, 32767, 32767},
		{-1, -32767, -32767},
		{0.6 / 32767, 1, 0},
		{-0.6 / 32767, -1, 0},
		{0.4 / 32767, 0, 0},
		{2, 32767, 32767},
		{-2, -32768, -32768},
		{math.Inf(1), 32767, 32767},
		{math.Inf(-1), -32768, -32768},
		{math.NaN(), 0, 0},
	}
	for _, tt := range tests {
		if got := Quantize(tt.x, RoundNearest); got != tt.nearest {
			t.Errorf("Quantize(%v, nearest) = %d, want %d", tt.x, got, tt.nearest)
		}
		if got := Quantize(tt.x, RoundTruncate); got != tt.truncate {
			t.Errorf("Quantize(%v, truncate) = %d, want %d", tt.x, got, tt.truncate)
		}
	}
}

func TestRoundingPoliciesDifferByAtMostOneStep(t *testing.T) {
	for i := -1000; i <= 1000; i++ {
		x := float64(i) / 997.3
		a := int(Quantize(x, RoundNearest))
		b := int(Quantize(x, RoundTruncate))
		if d := a - b; d < -1 || d > 1 {
			t.Fatalf("x=%v: nearest=%d truncate=%d differ by %d", x, a, b, d)
		}
	}
}

func TestEncodeClipsInsteadOfWrapping(t *testing.T) {
	data := EncodeSamples([]float64{1.5, -1.5})
	sig, err := Decode(data, Mono16(8000))
	if err != nil {
		t.Fatal(err)
	}
	if sig.At(0) != 1 {
		t.Fatalf("clipped positive sample = %v, want 1", sig.At(0))
	}
	if sig.At(1) != -32768.0/32767.0 {
		t.Fatalf("clipped negative sample = %v, want %v", sig.At(1), -32768.0/32767.0)
	}
}

func TestRoundTripQuantizedSamples(t *testing.T) {
	samples := make([]float64, 0, 4096)
	for k := -32768; k <= 32767; k += 16 {
		samples = append(samples, float64(k)/Scale)
	}
	samples = append(samples, 32767/Scale, -1, 0)

	in, err := vocoder.NewSignal(samples, 22050)
	if err != nil {
		t.Fatal(err)
	}
	out, err := DecodeStream(EncodeStream(in))
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}
	if out.Len() != in.Len() {
		t.Fatalf("Len() = %d, want %d", out.Len(), in.Len())
	}
	for i := range samples {
		if out.At(i) != samples[i] {
			t.Fatalf("sample %d = %v, want %v", i, out.At(i), samples[i])
		}
	}
	if out.SampleRate() != 22050 {
		t.Fatalf("SampleRate() = %d, want 22050", out.SampleRate())
	}
}

func TestStreamDuration(t *testing.T) {
	s := Stream{Format: Mono16(16000), Data: make([]byte, 32000)}
	if s.Samples() != 16000 {
		t.Fatalf("Samples() = %d, want 16000", s.Samples())
	}
	if s.Duration().Seconds() != 1 {
		t.Fatalf("Duration() = %v, want 1s", s.Duration())
	}
}
