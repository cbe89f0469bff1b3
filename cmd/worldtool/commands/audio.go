package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/container"
	"github.com/cwbudde/algo-world/vocoder/pcm"
)

// readSignal loads a WAV file, resampling it when rate > 0.
func readSignal(path string, rate int, downmix bool) (vocoder.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return vocoder.Signal{}, err
	}
	defer f.Close()

	var opts []container.ReadOption
	if downmix {
		opts = append(opts, container.WithDownmix())
	}
	stream, err := container.ReadWAV(f, opts...)
	if err != nil {
		return vocoder.Signal{}, fmt.Errorf("%s: %w", path, err)
	}
	sig, err := pcm.DecodeStream(stream)
	if err != nil {
		return vocoder.Signal{}, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("read audio", "path", path, "rate", sig.SampleRate(), "samples", sig.Len(), "duration", sig.Duration())

	if rate > 0 && rate != sig.SampleRate() {
		sig, err = container.ResampleSignal(sig, rate)
		if err != nil {
			return vocoder.Signal{}, err
		}
		slog.Debug("resampled", "rate", rate, "samples", sig.Len())
	}
	return sig, nil
}

// writeStream writes s to a WAV file at path.
func writeStream(path string, s pcm.Stream) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := container.WriteWAV(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Info("wrote audio", "path", path, "rate", s.Format.SampleRate, "duration", s.Duration())
	return nil
}
