package extract

import "errors"

// Error categories of an extraction run. All of them abort the request; no
// partial document is returned. Per-region recognition failures are not
// errors and degrade to missing text.
var (
	// ErrConfiguration reports a missing or invalid run-wide setting.
	ErrConfiguration = errors.New("configuration error")

	// ErrInput reports caller-supplied input violating a mode's
	// precondition; the boundary layer reports it as a client fault.
	ErrInput = errors.New("input error")

	// ErrResource reports a configured or referenced asset that cannot be
	// located or decoded.
	ErrResource = errors.New("resource error")

	// ErrProcessing reports an upload that cannot be parsed as a valid
	// document of the expected format.
	ErrProcessing = errors.New("processing error")
)
