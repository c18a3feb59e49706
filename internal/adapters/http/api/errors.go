package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthorized    = errors.New("authentication required")
	ErrForbidden       = errors.New("admin role required")
	ErrFeatureDisabled = errors.New("feature disabled")
)
