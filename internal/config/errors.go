package config

import (
	"errors"
)

// Sentinel error kinds for this package, matchable with errors.Is.
var (
	// ErrInvalidConfig marks configuration that failed validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrLoadConfig marks failures reading or parsing config sources.
	ErrLoadConfig = errors.New("load config failed")
)
