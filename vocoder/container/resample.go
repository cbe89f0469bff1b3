package container

import (
	"fmt"

	resampling "github.com/tphakala/go-audio-resampling"

	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/pcm"
)

// Resample converts s to rate. Equal rates return s unchanged.
func Resample(s pcm.Stream, rate int) (pcm.Stream, error) {
	if rate < 1 {
		return pcm.Stream{}, fmt.Errorf("container: %w: target rate %d", vocoder.ErrInvalidOption, rate)
	}
	sig, err := pcm.DecodeStream(s)
	if err != nil {
		return pcm.Stream{}, fmt.Errorf("container: %w", err)
	}
	if sig.SampleRate() == rate {
		return s, nil
	}
	out, err := ResampleSignal(sig, rate)
	if err != nil {
		return pcm.Stream{}, err
	}
	return pcm.EncodeStream(out), nil
}

// ResampleSignal converts sig to rate with a high quality polyphase filter.
func ResampleSignal(sig vocoder.Signal, rate int) (vocoder.Signal, error) {
	if rate < 1 {
		return vocoder.Signal{}, fmt.Errorf("container: %w: target rate %d", vocoder.ErrInvalidOption, rate)
	}
	if sig.SampleRate() == rate {
		return sig, nil
	}
	r, err := resampling.New(&resampling.Config{
		InputRate:  float64(sig.SampleRate()),
		OutputRate: float64(rate),
		Channels:   pcm.Channels,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return vocoder.Signal{}, fmt.Errorf("container: failed to create resampler: %w", err)
	}
	out, err := r.Process(sig.Samples())
	if err != nil {
		return vocoder.Signal{}, fmt.Errorf("container: resample: %w", err)
	}
	tail, err := r.Flush()
	if err != nil {
		return vocoder.Signal{}, fmt.Errorf("container: resample flush: %w", err)
	}
	return vocoder.NewSignal(append(out, tail...), rate)
}
