package merge

import "errors"

// Sentinel kinds for merge errors.
var (
	ErrInvalidMerge   = errors.New("invalid merge request")
	ErrSelfMerge      = errors.New("primary and duplicate are the same player")
	ErrPlayerNotFound = errors.New("merge target not found")
	ErrPlayerRetired  = errors.New("merge target already retired")
	ErrAliasConflict  = errors.New("alias conflict during merge")
)
