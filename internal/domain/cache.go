package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache defines the interface (port) for the cache shared with the web application.
type Cache interface {
	// Get returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete does not fail when the key is absent.
	Delete(ctx context.Context, key string) error

	// DeleteByPattern removes every key matching a glob pattern and returns how many were removed.
	DeleteByPattern(ctx context.Context, pattern string) (int64, error)

	Ping(ctx context.Context) error
}
