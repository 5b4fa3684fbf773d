package storage

import (
	"context"

	"github.com/soberlog/soberlog/internal/schema"
)

// Record is the loose map form a stored entity takes. Backends see
// physical records (JSON-kind fields encoded to strings); the store hands
// callers logical records (decoded per the schema registry).
type Record = map[string]any

// Backend is the physical storage interface. The SQLite and flat-file
// engines both implement it; selection happens once when the store opens.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Init creates collections that do not exist yet. Safe to call more
	// than once.
	Init(reg *schema.Registry) error

	// GetAll returns every physical record, in insertion order.
	GetAll(ctx context.Context, collection string) ([]Record, error)

	// GetByID returns nil, nil when the id is absent.
	GetByID(ctx context.Context, collection, id string) (Record, error)

	// Insert writes a fully-populated physical record.
	Insert(ctx context.Context, collection string, rec Record) error

	// Update replaces the physical record with the given id. The store
	// performs the logical merge before calling this.
	Update(ctx context.Context, collection, id string, rec Record) error

	// Delete reports whether a record was actually removed.
	Delete(ctx context.Context, collection, id string) (bool, error)

	// Select executes a structured query with in-memory-equivalent
	// semantics: stable ordering, equality predicates, optional limit.
	Select(ctx context.Context, q Query) ([]Record, error)

	Close() error
}
