// Package sqlite provides a SQLite implementation of the RecordStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/lexibase/lexi-core/internal/domain/entities"
	"github.com/lexibase/lexi-core/internal/infrastructure/config"
)

// timeLayout is the storage format for timestamps. RFC3339 with nanoseconds
// keeps ordering comparisons exact across a write/read round trip.
const timeLayout = time.RFC3339Nano

// Repository implements ports.RecordStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Cached dictionary lookup results. Duplicate (term, language) rows are
	-- permitted; callers address a specific row by id.
	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		term TEXT NOT NULL,
		language TEXT NOT NULL,
		lemma TEXT NOT NULL DEFAULT '',
		payload TEXT,
		part_of_speech TEXT NOT NULL DEFAULT '',
		fetched_at TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_entries_term ON entries(term, language);

	-- Alternate surface forms of an entry (append-only)
	CREATE TABLE IF NOT EXISTS variants (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_id INTEGER NOT NULL REFERENCES entries(id),
		variant TEXT NOT NULL,
		variant_type TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_variants_entry ON variants(entry_id);

	-- Per-user annotations; one row per (user, entry) pair
	CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		entry_id INTEGER NOT NULL REFERENCES entries(id),
		user_id TEXT NOT NULL,
		tags TEXT,
		note TEXT NOT NULL DEFAULT '',
		example_sentence TEXT NOT NULL DEFAULT '',
		starred INTEGER NOT NULL DEFAULT 0,
		familiarity TEXT NOT NULL DEFAULT 'new',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE(user_id, entry_id)
	);
	CREATE INDEX IF NOT EXISTS idx_notes_user ON notes(user_id);

	-- Lookup history log (append-only)
	CREATE TABLE IF NOT EXISTS lookups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		term TEXT NOT NULL,
		language TEXT NOT NULL,
		entry_id INTEGER REFERENCES entries(id),
		looked_at TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		context TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_lookups_user ON lookups(user_id);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// InsertEntry inserts a new entry and assigns its ID.
func (r *Repository) InsertEntry(ctx context.Context, entry *entities.Entry) error {
	payload, err := marshalPayload(entry.Payload)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO entries (term, language, lemma, payload, part_of_speech, fetched_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		entry.Term,
		entry.Language,
		entry.Lemma,
		payload,
		entry.PartOfSpeech,
		formatTime(entry.FetchedAt),
		formatTime(entry.CreatedAt),
		formatTime(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting entry: %w", err)
	}

	entry.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading entry id: %w", err)
	}
	return nil
}

// UpdateEntry rewrites an existing entry in place by ID.
func (r *Repository) UpdateEntry(ctx context.Context, entry *entities.Entry) error {
	payload, err := marshalPayload(entry.Payload)
	if err != nil {
		return err
	}

	query := `
		UPDATE entries
		SET term = ?, language = ?, lemma = ?, payload = ?, part_of_speech = ?,
		    fetched_at = ?, created_at = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		entry.Term,
		entry.Language,
		entry.Lemma,
		payload,
		entry.PartOfSpeech,
		formatTime(entry.FetchedAt),
		formatTime(entry.CreatedAt),
		formatTime(entry.UpdatedAt),
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("updating entry: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("entry not found: %d", entry.ID)
	}
	return nil
}

// FindEntryByID finds an entry by its ID.
func (r *Repository) FindEntryByID(ctx context.Context, id int64) (*entities.Entry, error) {
	query := `
		SELECT id, term, language, lemma, payload, part_of_speech, fetched_at, created_at, updated_at
		FROM entries
		WHERE id = ?
	`
	row := r.db.QueryRowContext(ctx, query, id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries lists cached entries with pagination, newest first.
func (r *Repository) ListEntries(ctx context.Context, limit, offset int) ([]entities.Entry, error) {
	query := `
		SELECT id, term, language, lemma, payload, part_of_speech, fetched_at, created_at, updated_at
		FROM entries
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Entry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *entry)
	}
	return result, rows.Err()
}

// CountEntries returns the total number of cached entries.
func (r *Repository) CountEntries(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return count, nil
}

// InsertVariant inserts a new variant and assigns its ID.
func (r *Repository) InsertVariant(ctx context.Context, variant *entities.Variant) error {
	query := `
		INSERT INTO variants (entry_id, variant, variant_type, created_at)
		VALUES (?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		variant.EntryID,
		variant.Variant,
		variant.VariantType,
		formatTime(variant.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting variant: %w", err)
	}

	variant.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading variant id: %w", err)
	}
	return nil
}

// ListVariantsByEntry lists all variants recorded for an entry.
func (r *Repository) ListVariantsByEntry(ctx context.Context, entryID int64) ([]entities.Variant, error) {
	query := `
		SELECT id, entry_id, variant, variant_type, created_at
		FROM variants
		WHERE entry_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("querying variants: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Variant, 0, 8)
	for rows.Next() {
		var v entities.Variant
		var createdAt string
		if err := rows.Scan(&v.ID, &v.EntryID, &v.Variant, &v.VariantType, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning variant: %w", err)
		}
		if v.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, rows.Err()
}

// InsertNote inserts a new note and assigns its ID. The (user_id, entry_id)
// unique index rejects a second row for the same pair, so two racing saves
// cannot produce duplicates.
func (r *Repository) InsertNote(ctx context.Context, note *entities.Note) error {
	tags, err := marshalTags(note.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO notes (entry_id, user_id, tags, note, example_sentence, starred, familiarity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		note.EntryID,
		note.UserID,
		tags,
		note.Note,
		note.ExampleSentence,
		note.Starred,
		string(note.Familiarity),
		formatTime(note.CreatedAt),
		formatTime(note.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting note: %w", err)
	}

	note.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading note id: %w", err)
	}
	return nil
}

// UpdateNote rewrites an existing note in place by ID.
func (r *Repository) UpdateNote(ctx context.Context, note *entities.Note) error {
	tags, err := marshalTags(note.Tags)
	if err != nil {
		return err
	}

	query := `
		UPDATE notes
		SET tags = ?, note = ?, example_sentence = ?, starred = ?, familiarity = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		tags,
		note.Note,
		note.ExampleSentence,
		note.Starred,
		string(note.Familiarity),
		formatTime(note.UpdatedAt),
		note.ID,
	)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("note not found: %d", note.ID)
	}
	return nil
}

// FindNoteByOwner finds the single note a user holds for an entry. If the
// store somehow contains duplicates, the earliest row wins.
func (r *Repository) FindNoteByOwner(ctx context.Context, entryID int64, userID string) (*entities.Note, error) {
	query := `
		SELECT id, entry_id, user_id, tags, note, example_sentence, starred, familiarity, created_at, updated_at
		FROM notes
		WHERE entry_id = ? AND user_id = ?
		ORDER BY id ASC
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, query, entryID, userID)

	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotesByOwner lists all notes belonging to a user.
func (r *Repository) ListNotesByOwner(ctx context.Context, userID string) ([]entities.Note, error) {
	query := `
		SELECT id, entry_id, user_id, tags, note, example_sentence, starred, familiarity, created_at, updated_at
		FROM notes
		WHERE user_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Note, 0, 16)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *note)
	}
	return result, rows.Err()
}

// InsertLookup inserts a new lookup history row and assigns its ID.
func (r *Repository) InsertLookup(ctx context.Context, lookup *entities.Lookup) error {
	var entryID sql.NullInt64
	if lookup.EntryID != nil {
		entryID = sql.NullInt64{Int64: *lookup.EntryID, Valid: true}
	}

	query := `
		INSERT INTO lookups (user_id, term, language, entry_id, looked_at, source, context)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		lookup.UserID,
		lookup.Term,
		lookup.Language,
		entryID,
		formatTime(lookup.LookedAt),
		lookup.Source,
		lookup.Context,
	)
	if err != nil {
		return fmt.Errorf("inserting lookup: %w", err)
	}

	lookup.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading lookup id: %w", err)
	}
	return nil
}

// ListLookupsByOwner lists a user's lookup history in stored order.
func (r *Repository) ListLookupsByOwner(ctx context.Context, userID string, limit int) ([]entities.Lookup, error) {
	query := `
		SELECT id, user_id, term, language, entry_id, looked_at, source, context
		FROM lookups
		WHERE user_id = ?
		ORDER BY id ASC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying lookups: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Lookup, 0, limit)
	for rows.Next() {
		var l entities.Lookup
		var entryID sql.NullInt64
		var lookedAt string
		if err := rows.Scan(&l.ID, &l.UserID, &l.Term, &l.Language, &entryID, &lookedAt, &l.Source, &l.Context); err != nil {
			return nil, fmt.Errorf("scanning lookup: %w", err)
		}
		if entryID.Valid {
			id := entryID.Int64
			l.EntryID = &id
		}
		if l.LookedAt, err = parseTime(lookedAt); err != nil {
			return nil, err
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

// scanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

// scanEntry scans one entry row.
func scanEntry(s scanner) (*entities.Entry, error) {
	var entry entities.Entry
	var payload sql.NullString
	var fetchedAt, createdAt, updatedAt string

	err := s.Scan(
		&entry.ID,
		&entry.Term,
		&entry.Language,
		&entry.Lemma,
		&payload,
		&entry.PartOfSpeech,
		&fetchedAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning entry: %w", err)
	}

	if payload.Valid && payload.String != "" {
		if err := json.Unmarshal([]byte(payload.String), &entry.Payload); err != nil {
			return nil, fmt.Errorf("unmarshaling payload: %w", err)
		}
	}
	if entry.FetchedAt, err = parseTime(fetchedAt); err != nil {
		return nil, err
	}
	if entry.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if entry.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &entry, nil
}

// scanNote scans one note row.
func scanNote(s scanner) (*entities.Note, error) {
	var note entities.Note
	var tags sql.NullString
	var familiarity string
	var createdAt, updatedAt string

	err := s.Scan(
		&note.ID,
		&note.EntryID,
		&note.UserID,
		&tags,
		&note.Note,
		&note.ExampleSentence,
		&note.Starred,
		&familiarity,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning note: %w", err)
	}

	note.Familiarity = entities.Familiarity(familiarity)
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &note.Tags); err != nil {
			return nil, fmt.Errorf("unmarshaling tags: %w", err)
		}
	}
	if note.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if note.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &note, nil
}

// marshalPayload serializes an entry payload to a nullable JSON column.
func marshalPayload(payload map[string]any) (sql.NullString, error) {
	if payload == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshaling payload: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// marshalTags serializes note tags to a nullable JSON column.
func marshalTags(tags []string) (sql.NullString, error) {
	if tags == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshaling tags: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp: %w", err)
	}
	return t, nil
}
