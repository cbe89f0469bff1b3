package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-world/vocoder"
	"github.com/cwbudde/algo-world/vocoder/engine"
	// Registers the reference engine.
	_ "github.com/cwbudde/algo-world/vocoder/engine/world"
)

var (
	// Global flags
	cfgFile    string
	engineName string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "worldtool",
	Short: "Speech analysis and resynthesis",
	Long: `worldtool - analysis and resynthesis of speech with a vocoder engine.

Analysis turns a 16-bit PCM WAV file into three parameter sets: the F0
contour, the spectral envelope and the aperiodicity. Synthesis renders those
parameters back into a WAV file.

Analysis settings come from the defaults, a YAML file given with --config,
and command flags, in that order.

Examples:
  # Analyse into speech.f0, speech.sp and speech.ap
  worldtool analyze speech.wav -o speech

  # Round trip through the vocoder
  worldtool resynth speech.wav -o copy.wav
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML analysis config file")
	rootCmd.PersistentFlags().StringVar(&engineName, "engine", "world", "vocoder engine")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(synthesizeCmd)
	rootCmd.AddCommand(resynthCmd)
	rootCmd.AddCommand(infoCmd)
}

func initLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig returns the defaults overlaid with --config.
func loadConfig() (vocoder.Config, error) {
	if cfgFile == "" {
		return vocoder.DefaultConfig(), nil
	}
	cfg, err := vocoder.LoadConfig(cfgFile)
	if err != nil {
		return vocoder.Config{}, err
	}
	slog.Debug("loaded config", "path", cfgFile, "frame_period", cfg.FramePeriod, "f0_floor", cfg.F0Floor)
	return cfg, nil
}

func getEngine() (engine.Engine, error) {
	eng, err := engine.Initialize(engineName)
	if err != nil {
		return nil, fmt.Errorf("engine %q: %w", engineName, err)
	}
	return eng, nil
}
