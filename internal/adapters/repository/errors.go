package repository

import "errors"

// Sentinel kinds for registry errors.
var (
	ErrNotFound     = errors.New("player not found")
	ErrDuplicateID  = errors.New("player id already exists")
	ErrRetired      = errors.New("player has been absorbed by a merge")
	ErrInvalidLimit = errors.New("invalid trending limit")
)
