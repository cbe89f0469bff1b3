package vocoder

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config bundles the session-wide frame period with the per-stage analysis
// options. It is the shape of the YAML configuration files accepted by the
// command line tools.
type Config struct {
	FramePeriod     float64 `yaml:"frame_period"`
	AnalysisOptions `yaml:",inline"`
}

// DefaultConfig returns the canonical defaults.
func DefaultConfig() Config {
	return Config{
		FramePeriod:     DefaultFramePeriod,
		AnalysisOptions: DefaultAnalysisOptions(),
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := ValidateFramePeriod(c.FramePeriod); err != nil {
		return err
	}
	return c.AnalysisOptions.Validate()
}

// ParseConfig decodes YAML on top of the defaults; keys absent from data keep
// their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("vocoder: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("vocoder: read config: %w", err)
	}
	return ParseConfig(data)
}

// YAML renders c as a YAML document.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
