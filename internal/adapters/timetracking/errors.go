package timetracking

import "errors"

// Sentinel kinds for time tracking errors.
var (
	// ErrNetwork marks transport failures, timeouts, and 5xx replies.
	ErrNetwork = errors.New("time tracking unreachable")
	// ErrParse marks a malformed response body.
	ErrParse = errors.New("malformed time tracking response")
)
