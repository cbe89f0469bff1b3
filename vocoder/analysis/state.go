package analysis

import "fmt"

// State is the lifecycle position of a Session.
type State int

const (
	// StateEmpty means no signal has been loaded.
	StateEmpty State = iota
	// StateLoaded means a signal is loaded and F0 has not been extracted.
	StateLoaded
	// StateF0Ready means the F0 contour is retained for the spectral stages.
	StateF0Ready
	// StateF0Discarded means F0 was extracted without being retained.
	StateF0Discarded
	// StateReleased is terminal.
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoaded:
		return "loaded"
	case StateF0Ready:
		return "f0-ready"
	case StateF0Discarded:
		return "f0-discarded"
	case StateReleased:
		return "released"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
