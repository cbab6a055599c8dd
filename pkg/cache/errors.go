package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrBackend is returned when a cache backend is unreachable.
	ErrBackend = errors.New("cache backend unavailable")
)
