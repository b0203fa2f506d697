package store

import "errors"

// Errors returned by the in-memory stores. Callers branch on these the same
// way SQL-backed code branches on no-rows errors.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
)
