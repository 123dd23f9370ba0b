package storage

import "errors"

// Common storage errors. Using sentinel variables allows callers to detect
// error conditions via errors.Is instead of string comparisons.

var (
	// ErrUnknownKind is returned when a kind has no backing table.
	ErrUnknownKind = errors.New("storage: unknown kind")

	// ErrSessionFailed is returned by every relational operation after a
	// failed flush or commit, until the session is rolled back.
	ErrSessionFailed = errors.New("storage: session failed, rollback required")

	// ErrNilEntity is returned when New is called with a nil entity.
	ErrNilEntity = errors.New("storage: nil entity")
)
