package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/analysis"
	"github.com/cwbudde/algo-world/vocoder/engine"
	"github.com/cwbudde/algo-world/vocoder/paramio"
)

var (
	analyzeOutput      string
	analyzeBundle      bool
	analyzeRate        int
	analyzeDownmix     bool
	analyzeFramePeriod float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <in.wav>",
	Short: "Extract F0, spectral envelope and aperiodicity",
	Long: `Extract vocoder parameters from a 16-bit PCM WAV file.

By default three raw files are written: <prefix>.f0, <prefix>.sp and
<prefix>.ap. With --bundle a single msgpack file is written instead.

Examples:
  worldtool analyze speech.wav -o speech
  worldtool analyze --bundle --rate 16000 speech.wav -o speech.msgpack`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output prefix, or bundle path with --bundle (required)")
	analyzeCmd.Flags().BoolVar(&analyzeBundle, "bundle", false, "write a single msgpack bundle")
	analyzeCmd.Flags().IntVar(&analyzeRate, "rate", 0, "resample to this rate before analysis")
	analyzeCmd.Flags().BoolVar(&analyzeDownmix, "downmix", false, "average multi-channel input to mono")
	analyzeCmd.Flags().Float64Var(&analyzeFramePeriod, "frame-period", 0, "frame period in ms (overrides config)")
	_ = analyzeCmd.MarkFlagRequired("output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	res, err := analyzeFile(args[0], analyzeRate, analyzeDownmix, analyzeFramePeriod)
	if err != nil {
		return err
	}
	if analyzeBundle {
		if err := paramio.SaveBundle(analyzeOutput, res); err != nil {
			return err
		}
		slog.Info("wrote bundle", "path", analyzeOutput, "frames", res.F0.Len())
		return nil
	}
	if err := paramio.SaveSet(analyzeOutput, res); err != nil {
		return err
	}
	slog.Info("wrote parameters", "prefix", analyzeOutput, "frames", res.F0.Len(), "fft_size", res.Envelope.FFTSize)
	return nil
}

// analyzeFile runs the full analysis of a WAV file with the loaded config.
func analyzeFile(path string, rate int, downmix bool, framePeriod float64) (*analysis.Result, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if framePeriod != 0 {
		cfg.FramePeriod = framePeriod
	}
	eng, err := getEngine()
	if err != nil {
		return nil, err
	}
	sig, err := readSignal(path, rate, downmix)
	if err != nil {
		return nil, err
	}
	return analyzeSignal(eng, sig, cfg)
}

func analyzeSignal(eng engine.Engine, sig vocoder.Signal, cfg vocoder.Config) (*analysis.Result, error) {
	start := time.Now()
	res, err := analysis.Analyze(eng, sig, cfg)
	if err != nil {
		return nil, fmt.Errorf("analysis with %s: %w", eng.Name(), err)
	}
	slog.Debug("analysis done",
		"engine", res.Engine,
		"frames", res.F0.Len(),
		"voiced", res.F0.VoicedCount(),
		"fft_size", res.Envelope.FFTSize,
		"elapsed", time.Since(start))
	return res, nil
}
