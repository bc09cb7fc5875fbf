// Package kvstore provides the key-value persistence primitive that all
// pyqdeck state (completion, bookmarks, streak, journey) is built on.
package kvstore

import "context"

// Pair is a single key-value entry, used for batched writes.
type Pair struct {
	Key   string
	Value string
}

// Store is the minimal key-value contract. Keys and values are strings;
// a missing key is reported via the ok return, not an error.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set writes key to value, overwriting any existing entry.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// MultiGet returns the values for all present keys in one batch.
	// Absent keys are simply missing from the result map.
	MultiGet(ctx context.Context, keys []string) (map[string]string, error)

	// MultiSet writes all pairs in one batch.
	MultiSet(ctx context.Context, pairs []Pair) error
}
