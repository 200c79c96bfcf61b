package engine

import "errors"

var (
	// ErrModelNotFound is returned when the model file does not exist.
	ErrModelNotFound = errors.New("model file not found")

	// ErrSessionClosed is returned when a query is issued on a closed session.
	ErrSessionClosed = errors.New("session is closed")

	// ErrEmptyCommand is returned when Run receives no command tokens.
	ErrEmptyCommand = errors.New("command vector must not be empty")
)
