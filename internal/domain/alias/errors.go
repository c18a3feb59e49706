package alias

import "errors"

// Sentinel kinds for alias index errors.
var (
	ErrAliasConflict = errors.New("alias already mapped to another player")
	ErrInvalidAlias  = errors.New("invalid alias registration")
)
