package commands

import (
	"github.com/spf13/cobra"
)

var (
	resynthOutput      string
	resynthRate        int
	resynthDownmix     bool
	resynthFramePeriod float64
)

var resynthCmd = &cobra.Command{
	Use:   "resynth <in.wav>",
	Short: "Analyse a WAV file and synthesise it again",
	Long: `Run analysis and synthesis back to back. The output keeps the
analysis sample rate.

Example:
  worldtool resynth --rate 16000 speech.wav -o copy.wav`,
	Args: cobra.ExactArgs(1),
	RunE: runResynth,
}

func init() {
	resynthCmd.Flags().StringVarP(&resynthOutput, "output", "o", "", "output WAV file (required)")
	resynthCmd.Flags().IntVar(&resynthRate, "rate", 0, "resample to this rate before analysis")
	resynthCmd.Flags().BoolVar(&resynthDownmix, "downmix", false, "average multi-channel input to mono")
	resynthCmd.Flags().Float64Var(&resynthFramePeriod, "frame-period", 0, "frame period in ms (overrides config)")
	_ = resynthCmd.MarkFlagRequired("output")
}

func runResynth(cmd *cobra.Command, args []string) error {
	res, err := analyzeFile(args[0], resynthRate, resynthDownmix, resynthFramePeriod)
	if err != nil {
		return err
	}
	eng, err := getEngine()
	if err != nil {
		return err
	}
	return renderResult(eng, res, resynthOutput, 0, false)
}
