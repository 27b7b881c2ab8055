// Package handlers exposes the application-level operations of the record
// store. Each handler composes identity resolution, merging, and the store,
// and enforces authentication where an operation requires it.
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/lexibase/lexi-core/internal/domain/entities"
	"github.com/lexibase/lexi-core/internal/domain/ports"
	"github.com/lexibase/lexi-core/internal/domain/services"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// EntryHandler handles dictionary entry operations.
type EntryHandler struct {
	resolver *services.IdentityResolver
	store    ports.RecordStore
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(resolver *services.IdentityResolver, store ports.RecordStore) *EntryHandler {
	return &EntryHandler{
		resolver: resolver,
		store:    store,
	}
}

// EntryListResult contains the result of listing entries.
type EntryListResult struct {
	Entries []entities.Entry `json:"entries"`
	Total   int              `json:"total"`
}

// HandleUpsert creates a new entry, or merges the partial input into the
// entry addressed by ID. Fields omitted from the input keep their prior
// values; an unknown ID fails with not-found before anything is written.
func (h *EntryHandler) HandleUpsert(ctx context.Context, in entities.EntryInput) (*entities.Entry, error) {
	if in.Term != nil && entities.NormalizeTerm(*in.Term) == "" {
		return nil, entities.NewValidation("term must not be empty")
	}
	if in.ID == nil && in.Term == nil {
		return nil, entities.NewValidation("term is required")
	}

	existing, err := h.resolver.ResolveEntry(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	merged := services.MergeEntry(existing, in, timeNow())

	if existing != nil {
		if err := h.store.UpdateEntry(ctx, &merged); err != nil {
			return nil, fmt.Errorf("updating entry: %w", err)
		}
	} else {
		if err := h.store.InsertEntry(ctx, &merged); err != nil {
			return nil, fmt.Errorf("inserting entry: %w", err)
		}
	}
	return &merged, nil
}

// HandleAddVariant records an alternate form of an existing entry. Variants
// are append-only; the referenced entry must exist.
func (h *EntryHandler) HandleAddVariant(ctx context.Context, in entities.VariantInput) (*entities.Variant, error) {
	if entities.NormalizeTerm(in.Variant) == "" {
		return nil, entities.NewValidation("variant must not be empty")
	}

	if _, err := h.resolver.RequireEntry(ctx, in.EntryID); err != nil {
		return nil, err
	}

	variant := services.NewVariant(in, timeNow())
	if err := h.store.InsertVariant(ctx, &variant); err != nil {
		return nil, fmt.Errorf("inserting variant: %w", err)
	}
	return &variant, nil
}

// HandleGet returns a single entry by ID.
func (h *EntryHandler) HandleGet(ctx context.Context, id int64) (*entities.Entry, error) {
	return h.resolver.RequireEntry(ctx, id)
}

// HandleList returns cached entries with pagination.
func (h *EntryHandler) HandleList(ctx context.Context, limit, offset int) (*EntryListResult, error) {
	entriesList, err := h.store.ListEntries(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	count, err := h.store.CountEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting entries: %w", err)
	}

	return &EntryListResult{
		Entries: entriesList,
		Total:   count,
	}, nil
}

// HandleListVariants returns all variants recorded for an entry.
func (h *EntryHandler) HandleListVariants(ctx context.Context, entryID int64) ([]entities.Variant, error) {
	if _, err := h.resolver.RequireEntry(ctx, entryID); err != nil {
		return nil, err
	}
	variants, err := h.store.ListVariantsByEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("listing variants: %w", err)
	}
	return variants, nil
}
