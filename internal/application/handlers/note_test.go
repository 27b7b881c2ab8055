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

func boolPtr(b bool) *bool { return &b }

func newTestNoteHandler(userID string) (*NoteHandler, *mocks.RecordStore) {
	store := mocks.NewRecordStore()
	resolver := services.NewIdentityResolver(store)
	return NewNoteHandler(mocks.NewAuthenticator(userID), resolver, store), store
}

func seedEntry(t *testing.T, store *mocks.RecordStore, term string) *entities.Entry {
	t.Helper()
	entry := &entities.Entry{Term: term, Language: "en"}
	require.NoError(t, store.InsertEntry(context.Background(), entry))
	return entry
}

func TestNoteHandler_HandleSave_CreateWithDefaults(t *testing.T) {
	handler, store := newTestNoteHandler("u1")
	entry := seedEntry(t, store, "run")

	note, err := handler.HandleSave(context.Background(), entities.NoteInput{
		EntryID: entry.ID,
		Starred: boolPtr(true),
	})
	require.NoError(t, err)

	assert.NotZero(t, note.ID)
	assert.Equal(t, "u1", note.UserID)
	assert.True(t, note.Starred)
	assert.Equal(t, entities.FamiliarityNew, note.Familiarity, "familiarity defaults to new")
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)
}

func TestNoteHandler_HandleSave_SecondSaveMergesIntoSameRow(t *testing.T) {
	handler, store := newTestNoteHandler("u1")
	entry := seedEntry(t, store, "run")
	ctx := context.Background()

	_, err := handler.HandleSave(ctx, entities.NoteInput{EntryID: entry.ID, Starred: boolPtr(true)})
	require.NoError(t, err)

	second, err := handler.HandleSave(ctx, entities.NoteInput{EntryID: entry.ID, Note: strPtr("means to jog")})
	require.NoError(t, err)

	assert.True(t, second.Starred, "union of both saves: starred from the first")
	assert.Equal(t, "means to jog", second.Note, "note text from the second")
	assert.Len(t, store.Notes, 1, "exactly one row per (user, entry) pair")
}

func TestNoteHandler_HandleSave_Unauthorized(t *testing.T) {
	handler, store := newTestNoteHandler("")
	seedEntry(t, store, "run")
	before := store.RowCount()

	_, err := handler.HandleSave(context.Background(), entities.NoteInput{EntryID: 1, Note: strPtr("x")})
	require.Error(t, err)
	assert.True(t, entities.IsUnauthorized(err))
	assert.Equal(t, before, store.RowCount(), "unauthorized save mutates nothing")
}

func TestNoteHandler_HandleSave_MissingEntry(t *testing.T) {
	handler, store := newTestNoteHandler("u1")

	_, err := handler.HandleSave(context.Background(), entities.NoteInput{EntryID: 42, Note: strPtr("x")})
	require.Error(t, err)
	assert.True(t, entities.IsNotFound(err))
	assert.Zero(t, store.RowCount())
}

func TestNoteHandler_HandleSave_InvalidEntryID(t *testing.T) {
	handler, _ := newTestNoteHandler("u1")

	_, err := handler.HandleSave(context.Background(), entities.NoteInput{})
	assert.True(t, entities.IsValidation(err))
}

func TestNoteHandler_HandleList_OnlyOwnNotes(t *testing.T) {
	store := mocks.NewRecordStore()
	resolver := services.NewIdentityResolver(store)
	ctx := context.Background()

	entry := seedEntry(t, store, "run")

	u1 := NewNoteHandler(mocks.NewAuthenticator("u1"), resolver, store)
	u2 := NewNoteHandler(mocks.NewAuthenticator("u2"), resolver, store)

	_, err := u1.HandleSave(ctx, entities.NoteInput{EntryID: entry.ID, Note: strPtr("mine")})
	require.NoError(t, err)
	_, err = u2.HandleSave(ctx, entities.NoteInput{EntryID: entry.ID, Note: strPtr("theirs")})
	require.NoError(t, err)

	notes, err := u1.HandleList(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "u1", notes[0].UserID)
	assert.Equal(t, "mine", notes[0].Note)
}

func TestNoteHandler_HandleList_Unauthorized(t *testing.T) {
	handler, _ := newTestNoteHandler("")

	_, err := handler.HandleList(context.Background())
	assert.True(t, entities.IsUnauthorized(err))
}

// The two-user scenario: distinct users keep independent notes on the same
// entry, and repeated saves by one user never leak into the other's row.
func TestNoteHandler_PairIsolationScenario(t *testing.T) {
	store := mocks.NewRecordStore()
	resolver := services.NewIdentityResolver(store)
	ctx := context.Background()

	entry := seedEntry(t, store, "run")

	u1 := NewNoteHandler(mocks.NewAuthenticator("u1"), resolver, store)
	u2 := NewNoteHandler(mocks.NewAuthenticator("u2"), resolver, store)

	_, err := u1.HandleSave(ctx, entities.NoteInput{EntryID: entry.ID, Starred: boolPtr(true)})
	require.NoError(t, err)
	_, err = u1.HandleSave(ctx, entities.NoteInput{EntryID: entry.ID, Note: strPtr("means to jog")})
	require.NoError(t, err)
	_, err = u2.HandleSave(ctx, entities.NoteInput{EntryID: entry.ID, Note: strPtr("unrelated")})
	require.NoError(t, err)

	assert.Len(t, store.Notes, 2)

	mine, err := u1.HandleList(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.True(t, mine[0].Starred)
	assert.Equal(t, "means to jog", mine[0].Note)
}
