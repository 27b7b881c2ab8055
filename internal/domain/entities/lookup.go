package entities

import "time"

// Lookup is one row of the append-only lookup history log. Lookups are
// never updated or deleted.
type Lookup struct {
	ID       int64     `json:"id"`
	UserID   string    `json:"user_id"`
	Term     string    `json:"term"`
	Language string    `json:"language"`
	EntryID  *int64    `json:"entry_id,omitempty"` // Optional link to a cached entry
	LookedAt time.Time `json:"looked_at"`
	Source   string    `json:"source,omitempty"`  // Where the lookup came from, e.g. "cli", "reader"
	Context  string    `json:"context,omitempty"` // Sentence or situation the term appeared in
}

// LookupInput is the caller-supplied shape for logging a lookup event.
type LookupInput struct {
	Term     string     `json:"term"`
	Language *string    `json:"language,omitempty"`
	EntryID  *int64     `json:"entry_id,omitempty"`
	LookedAt *time.Time `json:"looked_at,omitempty"`
	Source   *string    `json:"source,omitempty"`
	Context  *string    `json:"context,omitempty"`
}
