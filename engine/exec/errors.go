package exec

import "errors"

var (
	// ErrBinaryNotFound is returned when no fasttext executable can be
	// resolved on PATH or at the configured location.
	ErrBinaryNotFound = errors.New("fasttext binary not found")

	// ErrMalformedOutput is returned when engine output cannot be parsed.
	ErrMalformedOutput = errors.New("malformed engine output")
)
