package services

import (
	"context"
	"fmt"

	"github.com/lexibase/lexi-core/internal/domain/entities"
	"github.com/lexibase/lexi-core/internal/domain/ports"
)

// IdentityResolver determines whether an incoming request addresses a record
// that already exists. All methods are read-only against the store.
type IdentityResolver struct {
	store ports.RecordStore
}

// NewIdentityResolver creates a new IdentityResolver.
func NewIdentityResolver(store ports.RecordStore) *IdentityResolver {
	return &IdentityResolver{store: store}
}

// ResolveEntry resolves the entry an upsert addresses. A nil id means the
// caller wants a fresh insert and resolves to no existing record. A non-nil
// id that does not exist is a not-found failure, never a silent insert.
func (r *IdentityResolver) ResolveEntry(ctx context.Context, id *int64) (*entities.Entry, error) {
	if id == nil {
		return nil, nil
	}
	entry, err := r.store.FindEntryByID(ctx, *id)
	if err != nil {
		return nil, fmt.Errorf("finding entry: %w", err)
	}
	if entry == nil {
		return nil, entities.NewNotFound("entry not found: %d", *id)
	}
	return entry, nil
}

// RequireEntry fails with not-found unless the entry exists. Used by
// operations that reference an entry without updating it.
func (r *IdentityResolver) RequireEntry(ctx context.Context, id int64) (*entities.Entry, error) {
	entry, err := r.store.FindEntryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding entry: %w", err)
	}
	if entry == nil {
		return nil, entities.NewNotFound("entry not found: %d", id)
	}
	return entry, nil
}

// ResolveNote finds the note a user holds for an entry, or nil when the pair
// has no note yet. Pairs are meant to be unique; if the store somehow holds
// duplicates the first match wins — the resolver does not self-heal.
func (r *IdentityResolver) ResolveNote(ctx context.Context, entryID int64, userID string) (*entities.Note, error) {
	note, err := r.store.FindNoteByOwner(ctx, entryID, userID)
	if err != nil {
		return nil, fmt.Errorf("finding note: %w", err)
	}
	return note, nil
}
