// Package entities contains core domain data structures.
package entities

import (
	"strings"
	"time"
)

// DefaultLanguage is the language assigned to entries and lookups when the
// caller does not specify one.
const DefaultLanguage = "en"

// Entry represents a cached dictionary lookup result for a term in a
// language. Duplicate (term, language) pairs are permitted; callers that
// want to update an existing cache row address it by ID.
type Entry struct {
	ID           int64          `json:"id"`
	Term         string         `json:"term"`
	Language     string         `json:"language"`
	Lemma        string         `json:"lemma,omitempty"`         // Normalized form (e.g., "ran" -> "run")
	Payload      map[string]any `json:"payload,omitempty"`       // Definitions, phonetics, examples
	PartOfSpeech string         `json:"part_of_speech,omitempty"`
	FetchedAt    time.Time      `json:"fetched_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// EntryInput is a partial entry supplied by a caller. Nil pointer fields
// (and nil Payload) mean "not provided" and never overwrite prior values.
type EntryInput struct {
	ID           *int64         `json:"id,omitempty"` // When set, addresses an existing entry
	Term         *string        `json:"term,omitempty"`
	Language     *string        `json:"language,omitempty"`
	Lemma        *string        `json:"lemma,omitempty"`
	Payload      map[string]any `json:"payload,omitempty"`
	PartOfSpeech *string        `json:"part_of_speech,omitempty"`
	FetchedAt    *time.Time     `json:"fetched_at,omitempty"`
}

// NormalizeTerm trims surrounding whitespace from a term.
func NormalizeTerm(term string) string {
	return strings.TrimSpace(term)
}
