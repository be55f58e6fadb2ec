// Package storage provides the persisted record collections backing the
// inquiry and offer workflows. Collections are interface-driven so the
// file-backed default can be swapped for in-memory (tests) or postgres
// without touching workflow code.
package storage

import "context"

// Record is any persisted entity addressed by a unique identifier. The store
// never enforces identifier uniqueness; callers own ID generation.
type Record interface {
	RecordID() string
}

// Store is a durable, keyed-by-identifier collection of a single record kind.
// All mutating operations are read-modify-write over the full collection:
// there is no partial write path and no optimistic-concurrency token.
//
// Absent lookups return sentinel.ErrNotFound; infrastructure failures return
// errors wrapping sentinel.ErrUnavailable or sentinel.ErrCorrupt.
type Store[T Record] interface {
	// ReadAll returns every record in insertion order. First access with no
	// backing data initializes an empty collection.
	ReadAll(ctx context.Context) ([]T, error)

	// FindOne returns the first record satisfying match.
	FindOne(ctx context.Context, match func(T) bool) (T, error)

	// FindMany returns all matching records, order preserved.
	FindMany(ctx context.Context, match func(T) bool) ([]T, error)

	// Create appends the record and persists the full collection.
	Create(ctx context.Context, rec T) (T, error)

	// Update replaces the first matching record wholesale with rec.
	Update(ctx context.Context, match func(T) bool, rec T) (T, error)

	// Delete removes the first matching record, reporting whether a removal
	// occurred.
	Delete(ctx context.Context, match func(T) bool) (bool, error)
}
