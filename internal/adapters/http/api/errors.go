package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("not allowed")
	ErrUpstream     = errors.New("upstream failure")
)
