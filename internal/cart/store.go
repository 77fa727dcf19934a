package cart

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when no slot exists for the key.
var ErrNotFound = errors.New("cart: slot not found")

// Store is the durable key-value slot backing session carts. The presence
// or absence of a key is meaningful: an absent slot means an empty cart,
// so writers must delete the key rather than store an empty list.
type Store interface {
	// Get returns the serialised cart for the key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put overwrites the slot for the key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the slot. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying storage.
	Close() error
}
