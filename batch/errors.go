package batch

import "errors"

var (
	// ErrSessionRequired is returned when a session is not provided.
	ErrSessionRequired = errors.New("engine session required")

	// ErrInvalidChunkSize is returned for a chunk size below 1.
	ErrInvalidChunkSize = errors.New("chunk size must be at least 1")
)
