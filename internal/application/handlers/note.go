package handlers

import (
	"context"
	"fmt"

	"github.com/lexibase/lexi-core/internal/domain/entities"
	"github.com/lexibase/lexi-core/internal/domain/ports"
	"github.com/lexibase/lexi-core/internal/domain/services"
)

// NoteHandler handles user word note operations. All operations require an
// authenticated user.
type NoteHandler struct {
	auth     ports.Authenticator
	resolver *services.IdentityResolver
	store    ports.RecordStore
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(auth ports.Authenticator, resolver *services.IdentityResolver, store ports.RecordStore) *NoteHandler {
	return &NoteHandler{
		auth:     auth,
		resolver: resolver,
		store:    store,
	}
}

// HandleSave creates or updates the caller's note for an entry. A user holds
// at most one note per entry: the first save for a pair inserts, later saves
// merge into the existing row, with explicitly provided fields winning.
func (h *NoteHandler) HandleSave(ctx context.Context, in entities.NoteInput) (*entities.Note, error) {
	if in.EntryID <= 0 {
		return nil, entities.NewValidation("entry_id is required")
	}

	userID, err := h.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := h.resolver.RequireEntry(ctx, in.EntryID); err != nil {
		return nil, err
	}

	existing, err := h.resolver.ResolveNote(ctx, in.EntryID, userID)
	if err != nil {
		return nil, err
	}

	merged := services.MergeNote(existing, in, userID, timeNow())

	if existing != nil {
		if err := h.store.UpdateNote(ctx, &merged); err != nil {
			return nil, fmt.Errorf("updating note: %w", err)
		}
	} else {
		if err := h.store.InsertNote(ctx, &merged); err != nil {
			return nil, fmt.Errorf("inserting note: %w", err)
		}
	}
	return &merged, nil
}

// HandleList returns all notes belonging to the caller. A user only ever
// sees their own notes.
func (h *NoteHandler) HandleList(ctx context.Context) ([]entities.Note, error) {
	userID, err := h.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	notes, err := h.store.ListNotesByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	return notes, nil
}
