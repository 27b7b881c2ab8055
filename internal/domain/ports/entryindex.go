package ports

import "context"

// IndexedEntry pairs an entry ID with the embedding of its text.
type IndexedEntry struct {
	EntryID   int64
	Text      string
	Embedding []float32
}

// EntryIndex defines the interface for the semantic index over cached
// entries. The index stores embeddings keyed by entry ID; the record store
// remains the source of truth for entry contents.
type EntryIndex interface {
	// EnsureCollection creates the index collection if it doesn't exist.
	EnsureCollection(ctx context.Context, vectorSize uint64) error

	// IndexEntries upserts embeddings for the given entries. Re-indexing
	// the same entry replaces its previous vector.
	IndexEntries(ctx context.Context, items []IndexedEntry) error

	// Search returns the IDs of the entries closest to the embedding.
	Search(ctx context.Context, embedding []float32, limit int) ([]int64, error)

	// DeleteEntry removes an entry's vector from the index.
	DeleteEntry(ctx context.Context, entryID int64) error

	// Close closes the index connection.
	Close() error
}
