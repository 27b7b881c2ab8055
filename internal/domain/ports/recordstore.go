package ports

import (
	"context"

	"github.com/lexibase/lexi-core/internal/domain/entities"
)

// RecordStore defines the interface for the transactional record store
// backing the four entity kinds. Finders return (nil, nil) when no record
// matches. Insert methods assign the generated ID on the passed record.
type RecordStore interface {
	// EnsureSchema creates the storage schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the underlying store.
	Close() error

	// Entry operations

	// InsertEntry inserts a new entry and assigns its ID.
	InsertEntry(ctx context.Context, entry *entities.Entry) error

	// UpdateEntry rewrites an existing entry in place by ID.
	UpdateEntry(ctx context.Context, entry *entities.Entry) error

	// FindEntryByID finds an entry by its ID.
	FindEntryByID(ctx context.Context, id int64) (*entities.Entry, error)

	// ListEntries lists cached entries with pagination, newest first.
	ListEntries(ctx context.Context, limit, offset int) ([]entities.Entry, error)

	// CountEntries returns the total number of cached entries.
	CountEntries(ctx context.Context) (int, error)

	// Variant operations (append-only)

	// InsertVariant inserts a new variant and assigns its ID.
	InsertVariant(ctx context.Context, variant *entities.Variant) error

	// ListVariantsByEntry lists all variants recorded for an entry.
	ListVariantsByEntry(ctx context.Context, entryID int64) ([]entities.Variant, error)

	// Note operations

	// InsertNote inserts a new note and assigns its ID.
	InsertNote(ctx context.Context, note *entities.Note) error

	// UpdateNote rewrites an existing note in place by ID.
	UpdateNote(ctx context.Context, note *entities.Note) error

	// FindNoteByOwner finds the single note a user holds for an entry.
	FindNoteByOwner(ctx context.Context, entryID int64, userID string) (*entities.Note, error)

	// ListNotesByOwner lists all notes belonging to a user.
	ListNotesByOwner(ctx context.Context, userID string) ([]entities.Note, error)

	// Lookup operations (append-only)

	// InsertLookup inserts a new lookup history row and assigns its ID.
	InsertLookup(ctx context.Context, lookup *entities.Lookup) error

	// ListLookupsByOwner lists a user's lookup history in stored order.
	ListLookupsByOwner(ctx context.Context, userID string, limit int) ([]entities.Lookup, error)
}
