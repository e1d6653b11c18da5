package cache

import (
	"errors"
)

// Sentinel errors for caching operations.
var (
	// ErrCacheMiss is returned when an item is not found in cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrBackend is returned for backend failures (I/O errors,
	// connection errors). A backend failure is never fatal to the
	// pipeline; callers degrade to recomputing.
	ErrBackend = errors.New("cache backend error")
)
