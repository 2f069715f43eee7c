package domain

import "errors"

var (
	// ErrInvalidQuery signals a malformed search query. Surfaced to the caller
	// as a client error; never retried.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrBackendUnavailable signals that the primary catalog store failed to
	// answer (timeout, connection failure, query error).
	ErrBackendUnavailable = errors.New("catalog backend unavailable")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
