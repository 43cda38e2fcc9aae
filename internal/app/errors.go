package app

import "errors"

// Sentinel kinds for orchestration errors.
var (
	ErrUnknownUser = errors.New("user not in directory")
)
