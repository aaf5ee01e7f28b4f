// Package kv defines the persistence boundary: a flat, synchronous
// key-value surface the record stores read from and write to. Values are
// opaque JSON documents; the keys in use are listed in keys.go.
package kv

import "context"

// Store is the outbound port for persisted state.
type Store interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
