package fastrtext

import "errors"

var (
	// ErrModelClosed is returned when a query is issued on a closed model.
	ErrModelClosed = errors.New("model handle is closed")

	// ErrMissingOutput is returned when Train receives a command vector
	// without an -output argument to rebind to.
	ErrMissingOutput = errors.New("command vector has no -output argument")
)
