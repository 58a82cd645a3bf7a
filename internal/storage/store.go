// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/dinesplit/internal/models"
)

// Store defines the interface for bill storage operations.
// Bills are identified by ID; writes replace the whole bill.
type Store interface {
	// List returns all bills in insertion order.
	List(ctx context.Context) ([]models.Bill, error)

	// Get retrieves a bill by its ID. found is false when no bill has that
	// ID; that is not an error.
	Get(ctx context.Context, billID string) (bill models.Bill, found bool, err error)

	// Upsert inserts the bill if its ID is unseen, otherwise replaces the
	// stored bill in place. Invalid bills are rejected with a
	// *models.ValidationError and nothing is written.
	Upsert(ctx context.Context, bill models.Bill) error

	// Update atomically loads a bill, applies fn and stores the result.
	// found is false (and fn is not called) when the bill does not exist.
	Update(ctx context.Context, billID string, fn func(models.Bill) (models.Bill, error)) (bill models.Bill, found bool, err error)

	// Delete removes the bill. Deleting a missing ID is not an error.
	Delete(ctx context.Context, billID string) error

	// InitializeIfEmpty stores seed only when the store holds no bills.
	// It reports whether the seed was written.
	InitializeIfEmpty(ctx context.Context, seed models.Bill) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}

// KV is the storage medium: string keys mapped to opaque blobs.
type KV interface {
	// Get returns the blob stored under key; found is false if there is none.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases any resources held by the medium.
	Close() error
}

// ModifyFunc receives the current blob under a key (found is false if there
// is none) and returns the blob to store. write=false leaves the key alone.
// It may be called more than once and must not have side effects.
type ModifyFunc func(value []byte, found bool) (next []byte, write bool, err error)

// AtomicKV is implemented by media shared between processes. Modify runs
// fn and stores its result only if the key did not change in between,
// retrying otherwise. Errors returned by fn are passed through unchanged.
type AtomicKV interface {
	KV
	Modify(ctx context.Context, key string, fn ModifyFunc) error
}
