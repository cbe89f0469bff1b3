package commands

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-world/vocoder/analysis"
	"github.com/cwbudde/algo-world/vocoder/container"
	"github.com/cwbudde/algo-world/vocoder/engine"
	"github.com/cwbudde/algo-world/vocoder/paramio"
	"github.com/cwbudde/algo-world/vocoder/pcm"
	"github.com/cwbudde/algo-world/vocoder/synthesis"
)

var (
	synthOutput      string
	synthRate        int
	synthFramePeriod float64
	synthTruncate    bool
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize <prefix|bundle.msgpack>",
	Short: "Render parameters to a WAV file",
	Long: `Render vocoder parameters to a 16-bit mono WAV file.

The input is either the prefix of a .f0/.sp/.ap set or a msgpack bundle.
--frame-period replaces the stored frame period, which stretches or
compresses the output in time.

Examples:
  worldtool synthesize speech -o copy.wav
  worldtool synthesize --frame-period 7.5 speech.msgpack -o slow.wav`,
	Args: cobra.ExactArgs(1),
	RunE: runSynthesize,
}

func init() {
	synthesizeCmd.Flags().StringVarP(&synthOutput, "output", "o", "", "output WAV file (required)")
	synthesizeCmd.Flags().IntVar(&synthRate, "rate", 0, "resample the output to this rate")
	synthesizeCmd.Flags().Float64Var(&synthFramePeriod, "frame-period", 0, "frame period in ms (overrides the stored one)")
	synthesizeCmd.Flags().BoolVar(&synthTruncate, "truncate", false, "quantise by truncation instead of rounding")
	_ = synthesizeCmd.MarkFlagRequired("output")
}

func runSynthesize(cmd *cobra.Command, args []string) error {
	res, err := loadParameters(args[0])
	if err != nil {
		return err
	}
	if synthFramePeriod != 0 {
		res.FramePeriod = synthFramePeriod
	}
	eng, err := getEngine()
	if err != nil {
		return err
	}
	return renderResult(eng, res, synthOutput, synthRate, synthTruncate)
}

func loadParameters(path string) (*analysis.Result, error) {
	if strings.HasSuffix(path, paramio.ExtBundle) {
		return paramio.LoadBundle(path)
	}
	return paramio.LoadSet(path)
}

// renderResult synthesises res and writes it to path.
func renderResult(eng engine.Engine, res *analysis.Result, path string, rate int, truncate bool) error {
	s, err := synthesis.New(eng)
	if err != nil {
		return err
	}
	var opts []pcm.Option
	if truncate {
		opts = append(opts, pcm.WithRounding(pcm.RoundTruncate))
	}

	start := time.Now()
	stream, err := s.SynthesizePCM(synthesis.FromResult(res), opts...)
	if err != nil {
		return err
	}
	slog.Debug("synthesis done", "engine", eng.Name(), "frames", res.F0.Len(),
		"samples", stream.Samples(), "elapsed", time.Since(start))

	if rate > 0 && rate != stream.Format.SampleRate {
		stream, err = container.Resample(stream, rate)
		if err != nil {
			return err
		}
	}
	return writeStream(path, stream)
}
