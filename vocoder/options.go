package vocoder

import (
	"fmt"
	"math"
)

// Default analysis settings.
const (
	DefaultFramePeriod           = 5.0
	DefaultSpeed                 = 1
	DefaultF0Floor               = 71.0
	DefaultF0Ceil                = 800.0
	DefaultF0AllowedRange        = 0.1
	DefaultQ1                    = -0.15
	DefaultAperiodicityThreshold = 0.85

	// MinF0Floor is the lowest accepted pitch search bound in Hz. Lower
	// bounds need transforms longer than any spectral stage can hold.
	MinF0Floor = 1.0
)

// AnalysisOptions configures the analysis stages. The options are read when a
// stage runs and are never stored in the produced parameters.
type AnalysisOptions struct {
	// Speed is the decimation factor of pitch detection (1 = full rate).
	Speed int `yaml:"speed" msgpack:"speed"`
	// F0Floor is the lower pitch search bound in Hz. The spectral stages
	// derive their FFT size from it.
	F0Floor float64 `yaml:"f0_floor" msgpack:"f0_floor"`
	// F0Ceil is the upper pitch search bound in Hz.
	F0Ceil float64 `yaml:"f0_ceil" msgpack:"f0_ceil"`
	// F0AllowedRange is the relative jump above which isolated F0 frames are
	// dropped while fixing the contour.
	F0AllowedRange float64 `yaml:"f0_allowed_range" msgpack:"f0_allowed_range"`
	// Q1 is the spectral envelope compensation lifter coefficient.
	Q1 float64 `yaml:"q1" msgpack:"q1"`
	// AperiodicityThreshold is the periodicity score below which a frame is
	// treated as fully aperiodic.
	AperiodicityThreshold float64 `yaml:"aperiodicity_threshold" msgpack:"aperiodicity_threshold"`
}

// AnalysisOption mutates AnalysisOptions.
type AnalysisOption func(*AnalysisOptions)

// DefaultAnalysisOptions returns the canonical defaults.
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		Speed:                 DefaultSpeed,
		F0Floor:               DefaultF0Floor,
		F0Ceil:                DefaultF0Ceil,
		F0AllowedRange:        DefaultF0AllowedRange,
		Q1:                    DefaultQ1,
		AperiodicityThreshold: DefaultAperiodicityThreshold,
	}
}

// WithSpeed sets the pitch detection decimation factor.
func WithSpeed(speed int) AnalysisOption {
	return func(o *AnalysisOptions) {
		o.Speed = speed
	}
}

// WithF0Floor sets the lower pitch bound in Hz.
func WithF0Floor(hz float64) AnalysisOption {
	return func(o *AnalysisOptions) {
		o.F0Floor = hz
	}
}

// WithF0Ceil sets the upper pitch bound in Hz.
func WithF0Ceil(hz float64) AnalysisOption {
	return func(o *AnalysisOptions) {
		o.F0Ceil = hz
	}
}

// WithF0AllowedRange sets the contour fixing threshold.
func WithF0AllowedRange(r float64) AnalysisOption {
	return func(o *AnalysisOptions) {
		o.F0AllowedRange = r
	}
}

// WithQ1 sets the spectral envelope compensation lifter coefficient.
func WithQ1(q1 float64) AnalysisOption {
	return func(o *AnalysisOptions) {
		o.Q1 = q1
	}
}

// WithAperiodicityThreshold sets the aperiodicity voicing threshold.
func WithAperiodicityThreshold(th float64) AnalysisOption {
	return func(o *AnalysisOptions) {
		o.AperiodicityThreshold = th
	}
}

// ApplyAnalysisOptions applies zero or more options to the defaults.
func ApplyAnalysisOptions(opts ...AnalysisOption) AnalysisOptions {
	o := DefaultAnalysisOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Validate checks the option ranges.
func (o AnalysisOptions) Validate() error {
	if o.Speed < 1 {
		return fmt.Errorf("%w: speed must be >= 1: %d", ErrInvalidOption, o.Speed)
	}
	if !(o.F0Floor >= MinF0Floor) || math.IsInf(o.F0Floor, 0) {
		return fmt.Errorf("%w: f0 floor must be >= %g: %g", ErrInvalidOption, MinF0Floor, o.F0Floor)
	}
	if !(o.F0Ceil > o.F0Floor) || math.IsInf(o.F0Ceil, 0) {
		return fmt.Errorf("%w: f0 ceil must be > f0 floor: %f <= %f", ErrInvalidOption, o.F0Ceil, o.F0Floor)
	}
	if !(o.F0AllowedRange > 0) {
		return fmt.Errorf("%w: f0 allowed range must be > 0: %f", ErrInvalidOption, o.F0AllowedRange)
	}
	if math.IsNaN(o.Q1) || math.IsInf(o.Q1, 0) {
		return fmt.Errorf("%w: q1 must be finite", ErrInvalidOption)
	}
	if o.AperiodicityThreshold < 0 || o.AperiodicityThreshold > 1 || math.IsNaN(o.AperiodicityThreshold) {
		return fmt.Errorf("%w: aperiodicity threshold must be in [0,1]: %f", ErrInvalidOption, o.AperiodicityThreshold)
	}
	return nil
}

// ValidateFramePeriod checks that ms is a usable frame period.
func ValidateFramePeriod(ms float64) error {
	if !(ms > 0) || math.IsInf(ms, 0) {
		return fmt.Errorf("%w: frame period must be > 0 ms: %f", ErrInvalidOption, ms)
	}
	return nil
}
