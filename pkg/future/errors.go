package future

import "errors"

var (
	// ErrPanic is returned when the operation behind a Future panicked.
	ErrPanic = errors.New("future: operation panicked")

	// ErrNilError is used when a Future is rejected with a nil error.
	ErrNilError = errors.New("future: rejected with nil error")
)
