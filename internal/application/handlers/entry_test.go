package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexibase/lexi-core/internal/domain/entities"
	"github.com/lexibase/lexi-core/internal/domain/mocks"
	"github.com/lexibase/lexi-core/internal/domain/services"
)

func strPtr(s string) *string { return &s }

func newTestEntryHandler() (*EntryHandler, *mocks.RecordStore) {
	store := mocks.NewRecordStore()
	return NewEntryHandler(services.NewIdentityResolver(store), store), store
}

func TestEntryHandler_HandleUpsert_Insert(t *testing.T) {
	handler, store := newTestEntryHandler()

	entry, err := handler.HandleUpsert(context.Background(), entities.EntryInput{Term: strPtr("run")})
	require.NoError(t, err)

	assert.NotZero(t, entry.ID)
	assert.Equal(t, "run", entry.Term)
	assert.Equal(t, "en", entry.Language)
	assert.Equal(t, entry.CreatedAt, entry.UpdatedAt, "fresh records carry matching timestamps")
	assert.Len(t, store.Entries, 1)
}

func TestEntryHandler_HandleUpsert_DuplicateTermsPermitted(t *testing.T) {
	handler, store := newTestEntryHandler()
	ctx := context.Background()

	first, err := handler.HandleUpsert(ctx, entities.EntryInput{Term: strPtr("run")})
	require.NoError(t, err)
	second, err := handler.HandleUpsert(ctx, entities.EntryInput{Term: strPtr("run")})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID, "no uniqueness on (term, language); callers dedup by id")
	assert.Len(t, store.Entries, 2)
}

func TestEntryHandler_HandleUpsert_UpdatePreservesOmittedFields(t *testing.T) {
	handler, _ := newTestEntryHandler()
	ctx := context.Background()

	created, err := handler.HandleUpsert(ctx, entities.EntryInput{Term: strPtr("run")})
	require.NoError(t, err)
	assert.Empty(t, created.Lemma)

	updated, err := handler.HandleUpsert(ctx, entities.EntryInput{ID: &created.ID, Lemma: strPtr("run")})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "run", updated.Term, "term omitted from input keeps its prior value")
	assert.Equal(t, "run", updated.Lemma)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updatedAt strictly increases")
}

func TestEntryHandler_HandleUpsert_UnknownIDFailsWithoutWrite(t *testing.T) {
	handler, store := newTestEntryHandler()

	missing := int64(42)
	_, err := handler.HandleUpsert(context.Background(), entities.EntryInput{ID: &missing, Term: strPtr("run")})
	require.Error(t, err)
	assert.True(t, entities.IsNotFound(err))
	assert.Zero(t, store.RowCount(), "failed upsert performs no write")
}

func TestEntryHandler_HandleUpsert_Validation(t *testing.T) {
	handler, store := newTestEntryHandler()
	ctx := context.Background()

	_, err := handler.HandleUpsert(ctx, entities.EntryInput{})
	assert.True(t, entities.IsValidation(err), "insert without a term is invalid")

	_, err = handler.HandleUpsert(ctx, entities.EntryInput{Term: strPtr("   ")})
	assert.True(t, entities.IsValidation(err), "blank term is invalid")

	assert.Zero(t, store.RowCount())
}

func TestEntryHandler_HandleAddVariant(t *testing.T) {
	handler, store := newTestEntryHandler()
	ctx := context.Background()

	entry, err := handler.HandleUpsert(ctx, entities.EntryInput{Term: strPtr("run")})
	require.NoError(t, err)

	variant, err := handler.HandleAddVariant(ctx, entities.VariantInput{
		EntryID:     entry.ID,
		Variant:     "ran",
		VariantType: strPtr("past"),
	})
	require.NoError(t, err)

	assert.NotZero(t, variant.ID)
	assert.Equal(t, entry.ID, variant.EntryID)
	assert.Equal(t, "ran", variant.Variant)
	assert.Equal(t, "past", variant.VariantType)
	assert.Len(t, store.Variants, 1)
}

func TestEntryHandler_HandleAddVariant_MissingEntryFailsWithoutWrite(t *testing.T) {
	handler, store := newTestEntryHandler()

	_, err := handler.HandleAddVariant(context.Background(), entities.VariantInput{EntryID: 42, Variant: "ran"})
	require.Error(t, err)
	assert.True(t, entities.IsNotFound(err))
	assert.Zero(t, store.RowCount())
}

func TestEntryHandler_HandleAddVariant_EmptyVariantInvalid(t *testing.T) {
	handler, _ := newTestEntryHandler()

	_, err := handler.HandleAddVariant(context.Background(), entities.VariantInput{EntryID: 1, Variant: " "})
	assert.True(t, entities.IsValidation(err))
}

func TestEntryHandler_HandleListVariants(t *testing.T) {
	handler, _ := newTestEntryHandler()
	ctx := context.Background()

	entry, err := handler.HandleUpsert(ctx, entities.EntryInput{Term: strPtr("run")})
	require.NoError(t, err)

	for _, form := range []string{"ran", "running", "runs"} {
		_, err := handler.HandleAddVariant(ctx, entities.VariantInput{EntryID: entry.ID, Variant: form})
		require.NoError(t, err)
	}

	variants, err := handler.HandleListVariants(ctx, entry.ID)
	require.NoError(t, err)
	require.Len(t, variants, 3)
	assert.Equal(t, "ran", variants[0].Variant)

	_, err = handler.HandleListVariants(ctx, entry.ID+100)
	assert.True(t, entities.IsNotFound(err))
}

func TestEntryHandler_HandleList(t *testing.T) {
	handler, _ := newTestEntryHandler()
	ctx := context.Background()

	for _, term := range []string{"run", "walk", "jump"} {
		_, err := handler.HandleUpsert(ctx, entities.EntryInput{Term: strPtr(term)})
		require.NoError(t, err)
	}

	result, err := handler.HandleList(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, result.Entries, 2)
	assert.Equal(t, 3, result.Total)
}

// Scenario from the command workflow: cache an entry, then backfill its
// lemma without touching anything else.
func TestEntryHandler_UpsertScenario_LemmaBackfill(t *testing.T) {
	handler, _ := newTestEntryHandler()
	ctx := context.Background()

	e1, err := handler.HandleUpsert(ctx, entities.EntryInput{Term: strPtr("run"), Language: strPtr("en")})
	require.NoError(t, err)
	assert.Empty(t, e1.Lemma)

	updated, err := handler.HandleUpsert(ctx, entities.EntryInput{ID: &e1.ID, Lemma: strPtr("run")})
	require.NoError(t, err)
	assert.Equal(t, "run", updated.Term)
	assert.Equal(t, "run", updated.Lemma)
	assert.True(t, updated.UpdatedAt.After(e1.UpdatedAt))
}
