// Package cache provides a generic in-memory LRU cache with TTL. Row data
// is never cached; callers use it for slow-changing metadata like sheet
// header layouts.
package cache

// Cache defines a generic cache interface
type Cache[T any] interface {
	// Get retrieves a value from the cache
	Get(key string) (T, bool)

	// Set stores a value in the cache
	Set(key string, data T)

	// Delete removes a key from the cache
	Delete(key string)

	// Size returns the current number of items in the cache
	Size() int
}
