package feeds

import "errors"

var (
	// ErrInvalidSource indicates a source with missing configuration.
	ErrInvalidSource = errors.New("invalid feed source")

	// ErrFetchFailed indicates the source could not be retrieved.
	ErrFetchFailed = errors.New("feed fetch failed")

	// ErrParseFailed indicates the payload was not a recognizable feed.
	ErrParseFailed = errors.New("feed parse failed")
)
