package handlers

import (
	"context"
	"fmt"

	"github.com/lexibase/lexi-core/internal/domain/entities"
	"github.com/lexibase/lexi-core/internal/domain/ports"
	"github.com/lexibase/lexi-core/internal/domain/services"
)

// LookupHandler handles lookup history operations. The history log is
// append-only and scoped to the authenticated user.
type LookupHandler struct {
	auth  ports.Authenticator
	store ports.RecordStore
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(auth ports.Authenticator, store ports.RecordStore) *LookupHandler {
	return &LookupHandler{
		auth:  auth,
		store: store,
	}
}

// HandleLog appends one lookup event to the caller's history. Every call
// creates a new row; there is no identity resolution.
func (h *LookupHandler) HandleLog(ctx context.Context, in entities.LookupInput) (*entities.Lookup, error) {
	if entities.NormalizeTerm(in.Term) == "" {
		return nil, entities.NewValidation("term must not be empty")
	}

	userID, err := h.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	lookup := services.NewLookup(in, userID, timeNow())
	if err := h.store.InsertLookup(ctx, &lookup); err != nil {
		return nil, fmt.Errorf("inserting lookup: %w", err)
	}
	return &lookup, nil
}

// HandleHistory returns the caller's lookup history in stored order.
func (h *LookupHandler) HandleHistory(ctx context.Context, limit int) ([]entities.Lookup, error) {
	userID, err := h.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	lookups, err := h.store.ListLookupsByOwner(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing lookup history: %w", err)
	}
	return lookups, nil
}
