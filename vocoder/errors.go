package vocoder

import "errors"

// Error kinds shared by all vocoder packages. Callers match them with
// errors.Is; call sites wrap them with context.
var (
	// ErrMalformedAudio reports PCM data that cannot be decoded: a byte count
	// that is not a multiple of the sample width, or an unsupported channel
	// count or bit depth.
	ErrMalformedAudio = errors.New("vocoder: malformed audio")

	// ErrInvalidState reports an analysis call the session state does not
	// permit.
	ErrInvalidState = errors.New("vocoder: invalid session state")

	// ErrMissingDependency reports a spectral stage requested without a
	// retained F0 contour.
	ErrMissingDependency = errors.New("vocoder: retained F0 contour required")

	// ErrShapeMismatch reports parameter buffers whose row or column counts
	// disagree.
	ErrShapeMismatch = errors.New("vocoder: shape mismatch")

	// ErrInvalidOption reports an out-of-range option or argument.
	ErrInvalidOption = errors.New("vocoder: invalid option")
)
