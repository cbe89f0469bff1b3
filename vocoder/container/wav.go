package container

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/pcm"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag.
const wavFormatPCM = 1

// ReadOption configures ReadWAV.
type ReadOption func(*readConfig)

type readConfig struct {
	downmix bool
}

// WithDownmix averages multi-channel input to mono instead of rejecting it.
func WithDownmix() ReadOption {
	return func(cfg *readConfig) {
		cfg.downmix = true
	}
}

// ReadWAV decodes a 16-bit PCM WAV file into a mono stream.
func ReadWAV(r io.ReadSeeker, opts ...ReadOption) (pcm.Stream, error) {
	var cfg readConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return pcm.Stream{}, fmt.Errorf("container: not a WAV file: %w", vocoder.ErrMalformedAudio)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return pcm.Stream{}, fmt.Errorf("container: decode WAV: %w", err)
	}
	if dec.WavAudioFormat != wavFormatPCM || dec.BitDepth != pcm.BitDepth {
		return pcm.Stream{}, fmt.Errorf("container: format %d with %d-bit samples: %w",
			dec.WavAudioFormat, dec.BitDepth, vocoder.ErrMalformedAudio)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		return pcm.Stream{}, fmt.Errorf("container: %d channels: %w", channels, vocoder.ErrMalformedAudio)
	}
	if channels != pcm.Channels && !cfg.downmix {
		return pcm.Stream{}, fmt.Errorf("container: %d channels, mono required: %w", channels, vocoder.ErrMalformedAudio)
	}

	frames := len(buf.Data) / channels
	data := make([]byte, 2*frames)
	for i := range frames {
		sum := 0
		for c := range channels {
			sum += buf.Data[i*channels+c]
		}
		binary.LittleEndian.PutUint16(data[2*i:], uint16(int16(sum/channels)))
	}
	return pcm.Stream{Format: pcm.Mono16(int(dec.SampleRate)), Data: data}, nil
}

// WriteWAV encodes s as a 16-bit mono PCM WAV file.
func WriteWAV(w io.WriteSeeker, s pcm.Stream) error {
	if err := s.Format.Validate(); err != nil {
		return fmt.Errorf("container: %w", err)
	}
	if len(s.Data)%2 != 0 {
		return fmt.Errorf("container: odd PCM byte count %d: %w", len(s.Data), vocoder.ErrMalformedAudio)
	}

	samples := make([]int, len(s.Data)/2)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(s.Data[2*i:])))
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: pcm.Channels, SampleRate: s.Format.SampleRate},
		Data:           samples,
		SourceBitDepth: pcm.BitDepth,
	}

	enc := wav.NewEncoder(w, s.Format.SampleRate, pcm.BitDepth, pcm.Channels, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("container: write WAV: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("container: finish WAV: %w", err)
	}
	return nil
}
