package pcm

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-world/vocoder"
)

// Supported layout.
const (
	BitDepth = 16
	Channels = 1

	// Scale maps full-scale int16 to 1.0.
	Scale = 32767.0
)

// Format describes a PCM stream layout. Samples are always signed and
// little-endian.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// Mono16 returns the only layout the codec accepts at the given rate.
func Mono16(sampleRate int) Format {
	return Format{SampleRate: sampleRate, Channels: Channels, BitDepth: BitDepth}
}

// BytesPerSample returns the byte width of one sample frame.
func (f Format) BytesPerSample() int {
	return f.Channels * f.BitDepth / 8
}

// Validate reports ErrMalformedAudio for unsupported layouts.
func (f Format) Validate() error {
	if f.Channels != Channels {
		return fmt.Errorf("%w: %d channels, only mono is supported", vocoder.ErrMalformedAudio, f.Channels)
	}
	if f.BitDepth != BitDepth {
		return fmt.Errorf("%w: %d-bit samples, only 16-bit is supported", vocoder.ErrMalformedAudio, f.BitDepth)
	}
	if f.SampleRate < 1 {
		return fmt.Errorf("%w: sample rate must be >= 1: %d", vocoder.ErrMalformedAudio, f.SampleRate)
	}
	return nil
}

// String returns a MIME-like description such as "audio/L16; rate=16000; channels=1".
func (f Format) String() string {
	return fmt.Sprintf("audio/L%d; rate=%d; channels=%d", f.BitDepth, f.SampleRate, f.Channels)
}

// Stream is raw PCM data tagged with its layout. It is the value exchanged
// with container readers and writers.
type Stream struct {
	Format Format
	Data   []byte
}

// Samples returns the number of complete sample frames in s.
func (s Stream) Samples() int {
	bps := s.Format.BytesPerSample()
	if bps <= 0 {
		return 0
	}
	return len(s.Data) / bps
}

// Duration returns the playback duration of s.
func (s Stream) Duration() time.Duration {
	if s.Format.SampleRate <= 0 {
		return 0
	}
	return time.Duration(s.Samples()) * time.Second / time.Duration(s.Format.SampleRate)
}
