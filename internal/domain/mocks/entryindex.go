package mocks

import (
	"context"
	"sort"

	"github.com/lexibase/lexi-core/internal/domain/ports"
)

// EntryIndex is a mock implementation of ports.EntryIndex. Search returns
// all indexed entry IDs in insertion order, capped by the limit.
type EntryIndex struct {
	Indexed []ports.IndexedEntry
	Err     error
}

// NewEntryIndex creates a new mock EntryIndex.
func NewEntryIndex() *EntryIndex {
	return &EntryIndex{}
}

// EnsureCollection creates the index collection if it doesn't exist.
func (m *EntryIndex) EnsureCollection(_ context.Context, _ uint64) error {
	return m.Err
}

// IndexEntries upserts embeddings for the given entries.
func (m *EntryIndex) IndexEntries(_ context.Context, items []ports.IndexedEntry) error {
	if m.Err != nil {
		return m.Err
	}
	for _, item := range items {
		replaced := false
		for i := range m.Indexed {
			if m.Indexed[i].EntryID == item.EntryID {
				m.Indexed[i] = item
				replaced = true
				break
			}
		}
		if !replaced {
			m.Indexed = append(m.Indexed, item)
		}
	}
	return nil
}

// Search returns the IDs of indexed entries, capped by limit.
func (m *EntryIndex) Search(_ context.Context, _ []float32, limit int) ([]int64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	ids := make([]int64, 0, len(m.Indexed))
	for _, item := range m.Indexed {
		ids = append(ids, item.EntryID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids, nil
}

// DeleteEntry removes an entry's vector from the index.
func (m *EntryIndex) DeleteEntry(_ context.Context, entryID int64) error {
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Indexed {
		if m.Indexed[i].EntryID == entryID {
			m.Indexed = append(m.Indexed[:i], m.Indexed[i+1:]...)
			break
		}
	}
	return nil
}

// Close closes the index connection.
func (m *EntryIndex) Close() error {
	return nil
}
