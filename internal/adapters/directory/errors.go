package directory

import "errors"

// Sentinel kinds for directory errors.
var (
	ErrNetwork = errors.New("directory unreachable")
)
