package chat

import "errors"

// Sentinel kinds for chat errors.
var (
	ErrNetwork = errors.New("chat platform unreachable")
)
