// Package mocks provides in-memory implementations of the domain ports for
// testing.
package mocks

import (
	"context"
	"sort"

	"github.com/lexibase/lexi-core/internal/domain/entities"
)

// RecordStore is a mock implementation of ports.RecordStore backed by maps.
// Set Err to force every method to fail with that error.
type RecordStore struct {
	Entries  map[int64]*entities.Entry
	Variants map[int64]*entities.Variant
	Notes    map[int64]*entities.Note
	Lookups  map[int64]*entities.Lookup
	Err      error

	nextID int64
}

// NewRecordStore creates a new mock RecordStore.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		Entries:  make(map[int64]*entities.Entry),
		Variants: make(map[int64]*entities.Variant),
		Notes:    make(map[int64]*entities.Note),
		Lookups:  make(map[int64]*entities.Lookup),
	}
}

func (m *RecordStore) nextSequence() int64 {
	m.nextID++
	return m.nextID
}

// EnsureSchema creates the storage schema if it doesn't exist.
func (m *RecordStore) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the underlying store.
func (m *RecordStore) Close() error {
	return nil
}

// InsertEntry inserts a new entry and assigns its ID.
func (m *RecordStore) InsertEntry(_ context.Context, entry *entities.Entry) error {
	if m.Err != nil {
		return m.Err
	}
	entry.ID = m.nextSequence()
	stored := *entry
	m.Entries[entry.ID] = &stored
	return nil
}

// UpdateEntry rewrites an existing entry in place by ID.
func (m *RecordStore) UpdateEntry(_ context.Context, entry *entities.Entry) error {
	if m.Err != nil {
		return m.Err
	}
	stored := *entry
	m.Entries[entry.ID] = &stored
	return nil
}

// FindEntryByID finds an entry by its ID.
func (m *RecordStore) FindEntryByID(_ context.Context, id int64) (*entities.Entry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	entry, ok := m.Entries[id]
	if !ok {
		return nil, nil
	}
	copied := *entry
	return &copied, nil
}

// ListEntries lists cached entries with pagination, newest first.
func (m *RecordStore) ListEntries(_ context.Context, limit, offset int) ([]entities.Entry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	all := make([]entities.Entry, 0, len(m.Entries))
	for _, e := range m.Entries {
		all = append(all, *e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if offset >= len(all) {
		return []entities.Entry{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// CountEntries returns the total number of cached entries.
func (m *RecordStore) CountEntries(_ context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Entries), nil
}

// InsertVariant inserts a new variant and assigns its ID.
func (m *RecordStore) InsertVariant(_ context.Context, variant *entities.Variant) error {
	if m.Err != nil {
		return m.Err
	}
	variant.ID = m.nextSequence()
	stored := *variant
	m.Variants[variant.ID] = &stored
	return nil
}

// ListVariantsByEntry lists all variants recorded for an entry.
func (m *RecordStore) ListVariantsByEntry(_ context.Context, entryID int64) ([]entities.Variant, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Variant, 0, 4)
	for _, v := range m.Variants {
		if v.EntryID == entryID {
			result = append(result, *v)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// InsertNote inserts a new note and assigns its ID.
func (m *RecordStore) InsertNote(_ context.Context, note *entities.Note) error {
	if m.Err != nil {
		return m.Err
	}
	note.ID = m.nextSequence()
	stored := *note
	m.Notes[note.ID] = &stored
	return nil
}

// UpdateNote rewrites an existing note in place by ID.
func (m *RecordStore) UpdateNote(_ context.Context, note *entities.Note) error {
	if m.Err != nil {
		return m.Err
	}
	stored := *note
	m.Notes[note.ID] = &stored
	return nil
}

// FindNoteByOwner finds the single note a user holds for an entry.
func (m *RecordStore) FindNoteByOwner(_ context.Context, entryID int64, userID string) (*entities.Note, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	ids := make([]int64, 0, len(m.Notes))
	for id := range m.Notes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		n := m.Notes[id]
		if n.EntryID == entryID && n.UserID == userID {
			copied := *n
			return &copied, nil
		}
	}
	return nil, nil
}

// ListNotesByOwner lists all notes belonging to a user.
func (m *RecordStore) ListNotesByOwner(_ context.Context, userID string) ([]entities.Note, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Note, 0, 4)
	for _, n := range m.Notes {
		if n.UserID == userID {
			result = append(result, *n)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// InsertLookup inserts a new lookup history row and assigns its ID.
func (m *RecordStore) InsertLookup(_ context.Context, lookup *entities.Lookup) error {
	if m.Err != nil {
		return m.Err
	}
	lookup.ID = m.nextSequence()
	stored := *lookup
	m.Lookups[lookup.ID] = &stored
	return nil
}

// ListLookupsByOwner lists a user's lookup history in stored order.
func (m *RecordStore) ListLookupsByOwner(_ context.Context, userID string, limit int) ([]entities.Lookup, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Lookup, 0, 4)
	for _, l := range m.Lookups {
		if l.UserID == userID {
			result = append(result, *l)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// RowCount returns the total number of stored rows across all kinds. Tests
// use it to assert that failed operations performed no write.
func (m *RecordStore) RowCount() int {
	return len(m.Entries) + len(m.Variants) + len(m.Notes) + len(m.Lookups)
}
