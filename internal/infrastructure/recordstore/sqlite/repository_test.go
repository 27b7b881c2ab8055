package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexibase/lexi-core/internal/domain/entities"
	"github.com/lexibase/lexi-core/internal/infrastructure/config"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	repo, err := NewRepository(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func TestNewRepository_RequiresPath(t *testing.T) {
	_, err := NewRepository(config.SQLiteConfig{})
	assert.Error(t, err)
}

func TestRepository_EntryRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	entry := &entities.Entry{
		Term:         "run",
		Language:     "en",
		Lemma:        "run",
		PartOfSpeech: "verb",
		Payload:      map[string]any{"phonetic": "/rʌn/"},
		FetchedAt:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.InsertEntry(ctx, entry))
	assert.NotZero(t, entry.ID)

	found, err := repo.FindEntryByID(ctx, entry.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "run", found.Term)
	assert.Equal(t, "verb", found.PartOfSpeech)
	assert.Equal(t, map[string]any{"phonetic": "/rʌn/"}, found.Payload)
	assert.True(t, found.CreatedAt.Equal(now))
	assert.True(t, found.FetchedAt.Equal(now))
}

func TestRepository_FindEntryByID_MissingReturnsNil(t *testing.T) {
	repo := newTestRepository(t)

	found, err := repo.FindEntryByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepository_UpdateEntry(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	entry := &entities.Entry{Term: "run", Language: "en", FetchedAt: now, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.InsertEntry(ctx, entry))

	entry.Lemma = "run"
	entry.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, repo.UpdateEntry(ctx, entry))

	found, err := repo.FindEntryByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "run", found.Lemma)
	assert.True(t, found.UpdatedAt.After(found.CreatedAt))
}

func TestRepository_UpdateEntry_MissingFails(t *testing.T) {
	repo := newTestRepository(t)
	now := time.Now().UTC()

	err := repo.UpdateEntry(context.Background(), &entities.Entry{
		ID: 42, Term: "run", Language: "en", FetchedAt: now, CreatedAt: now, UpdatedAt: now,
	})
	assert.Error(t, err)
}

func TestRepository_ListAndCountEntries(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, term := range []string{"run", "walk", "jump"} {
		entry := &entities.Entry{Term: term, Language: "en", FetchedAt: now, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, repo.InsertEntry(ctx, entry))
	}

	entries, err := repo.ListEntries(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "jump", entries[0].Term, "newest first")

	count, err := repo.CountEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_Variants(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	entry := &entities.Entry{Term: "run", Language: "en", FetchedAt: now, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.InsertEntry(ctx, entry))

	for _, form := range []string{"ran", "running"} {
		v := &entities.Variant{EntryID: entry.ID, Variant: form, VariantType: "inflection", CreatedAt: now}
		require.NoError(t, repo.InsertVariant(ctx, v))
		assert.NotZero(t, v.ID)
	}

	variants, err := repo.ListVariantsByEntry(ctx, entry.ID)
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, "ran", variants[0].Variant)
	assert.Equal(t, "running", variants[1].Variant)
}

func TestRepository_InsertVariant_ForeignKeyEnforced(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.InsertVariant(context.Background(), &entities.Variant{
		EntryID: 42, Variant: "ran", CreatedAt: time.Now().UTC(),
	})
	assert.Error(t, err, "variants must reference an existing entry")
}

func TestRepository_NoteRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	entry := &entities.Entry{Term: "run", Language: "en", FetchedAt: now, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.InsertEntry(ctx, entry))

	note := &entities.Note{
		EntryID:     entry.ID,
		UserID:      "u1",
		Tags:        []string{"verbs", "motion"},
		Note:        "means to jog",
		Starred:     true,
		Familiarity: entities.FamiliarityLearning,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, repo.InsertNote(ctx, note))

	found, err := repo.FindNoteByOwner(ctx, entry.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, []string{"verbs", "motion"}, found.Tags)
	assert.Equal(t, "means to jog", found.Note)
	assert.True(t, found.Starred)
	assert.Equal(t, entities.FamiliarityLearning, found.Familiarity)
}

func TestRepository_InsertNote_UniquePairEnforced(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	entry := &entities.Entry{Term: "run", Language: "en", FetchedAt: now, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.InsertEntry(ctx, entry))

	first := &entities.Note{EntryID: entry.ID, UserID: "u1", Familiarity: entities.FamiliarityNew, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.InsertNote(ctx, first))

	dup := &entities.Note{EntryID: entry.ID, UserID: "u1", Familiarity: entities.FamiliarityNew, CreatedAt: now, UpdatedAt: now}
	err := repo.InsertNote(ctx, dup)
	assert.Error(t, err, "the unique index closes the resolve/write race")

	// A different user may hold a note on the same entry.
	other := &entities.Note{EntryID: entry.ID, UserID: "u2", Familiarity: entities.FamiliarityNew, CreatedAt: now, UpdatedAt: now}
	assert.NoError(t, repo.InsertNote(ctx, other))
}

func TestRepository_UpdateNote(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	entry := &entities.Entry{Term: "run", Language: "en", FetchedAt: now, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.InsertEntry(ctx, entry))

	note := &entities.Note{EntryID: entry.ID, UserID: "u1", Familiarity: entities.FamiliarityNew, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.InsertNote(ctx, note))

	note.Note = "updated"
	note.Familiarity = entities.FamiliarityFamiliar
	note.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, repo.UpdateNote(ctx, note))

	found, err := repo.FindNoteByOwner(ctx, entry.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, "updated", found.Note)
	assert.Equal(t, entities.FamiliarityFamiliar, found.Familiarity)
	assert.True(t, found.UpdatedAt.After(found.CreatedAt))
}

func TestRepository_ListNotesByOwner(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, term := range []string{"run", "walk"} {
		entry := &entities.Entry{Term: term, Language: "en", FetchedAt: now, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, repo.InsertEntry(ctx, entry))
		note := &entities.Note{EntryID: entry.ID, UserID: "u1", Familiarity: entities.FamiliarityNew, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, repo.InsertNote(ctx, note))
	}

	notes, err := repo.ListNotesByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	notes, err = repo.ListNotesByOwner(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestRepository_Lookups(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	entry := &entities.Entry{Term: "run", Language: "en", FetchedAt: now, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.InsertEntry(ctx, entry))

	first := &entities.Lookup{UserID: "u1", Term: "run", Language: "en", EntryID: &entry.ID, LookedAt: now, Source: "cli"}
	require.NoError(t, repo.InsertLookup(ctx, first))

	second := &entities.Lookup{UserID: "u1", Term: "walk", Language: "en", LookedAt: now.Add(time.Second)}
	require.NoError(t, repo.InsertLookup(ctx, second))

	history, err := repo.ListLookupsByOwner(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	assert.Equal(t, "run", history[0].Term, "stored order")
	require.NotNil(t, history[0].EntryID)
	assert.Equal(t, entry.ID, *history[0].EntryID)
	assert.Equal(t, "cli", history[0].Source)
	assert.Nil(t, history[1].EntryID)
	assert.True(t, history[0].LookedAt.Equal(now))
}

func TestRepository_ListLookupsByOwner_Limit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		l := &entities.Lookup{UserID: "u1", Term: "run", Language: "en", LookedAt: now}
		require.NoError(t, repo.InsertLookup(ctx, l))
	}

	history, err := repo.ListLookupsByOwner(ctx, "u1", 3)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}
