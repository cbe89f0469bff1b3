package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-vecmath/cpu"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-world/vocoder/engine"
	"github.com/cwbudde/algo-world/vocoder/shape"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show engines, effective settings and CPU features",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "engines: %s\n", strings.Join(engine.Names(), ", "))
	fmt.Fprintf(out, "selected: %s\n\n", engineName)

	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "settings:\n%s\n", indent(string(data)))

	printShapes(out, cfg.FramePeriod, cfg.F0Floor)
	fmt.Fprintln(out)

	f := cpu.DetectFeatures()
	fmt.Fprintf(out, "cpu: %s sse2=%t avx=%t avx2=%t neon=%t\n",
		f.Architecture, f.HasSSE2, f.HasAVX, f.HasAVX2, f.HasNEON)
	return nil
}

// printShapes lists the buffer shapes of one second of audio at common rates.
func printShapes(w io.Writer, framePeriod, f0Floor float64) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "rate\tframes/s\tfft\tbins")
	for _, rate := range []int{8000, 16000, 22050, 44100, 48000} {
		fft := shape.FFTSize(rate, f0Floor)
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\n", rate, shape.FrameCount(rate, rate, framePeriod), fft, shape.Bins(fft))
	}
	tw.Flush()
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
