package ports

import "context"

// KeyValueStore is the generic persistence surface the tracking core sits on:
// a synchronous store of opaque values under string keys. Implementations
// include the gorm-backed table adapter and the in-memory store used for
// tests and single-process deployments.
//
// The store gives no cross-process consistency guarantee; the tracking core
// treats the last write as the winner.
type KeyValueStore interface {
	// Get retrieves the value stored under key.
	// The second return value reports whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the value stored under key.
	// Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
