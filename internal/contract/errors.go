package contract

import "errors"

var (
	// ErrInvalidState means a computation cannot start, e.g. a sprint without a start instant.
	ErrInvalidState = errors.New("invalid state")

	// ErrNotImplemented means a point kind has no handler. It indicates a programming error.
	ErrNotImplemented = errors.New("not implemented")

	// ErrNotFound means a store lookup matched no row.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means a document or stored value could not be interpreted.
	ErrInvalidInput = errors.New("invalid input")
)
