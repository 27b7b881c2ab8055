package entities

import (
	"fmt"
	"time"
)

// Familiarity is a learning-progress rating on a note.
type Familiarity string

// Familiarity levels, in learning order.
const (
	FamiliarityNew      Familiarity = "new"
	FamiliarityLearning Familiarity = "learning"
	FamiliarityFamiliar Familiarity = "familiar"
	FamiliarityMastered Familiarity = "mastered"
)

// ParseFamiliarity validates and converts a string to a Familiarity.
func ParseFamiliarity(s string) (Familiarity, error) {
	switch Familiarity(s) {
	case FamiliarityNew, FamiliarityLearning, FamiliarityFamiliar, FamiliarityMastered:
		return Familiarity(s), nil
	default:
		return "", fmt.Errorf("invalid familiarity: %s (valid: new, learning, familiar, mastered)", s)
	}
}

// Note is a user's private annotation attached to an entry. At most one
// note exists per (user, entry) pair; repeated saves merge into the same row.
type Note struct {
	ID              int64       `json:"id"`
	EntryID         int64       `json:"entry_id"`
	UserID          string      `json:"user_id"`
	Tags            []string    `json:"tags,omitempty"`
	Note            string      `json:"note,omitempty"`
	ExampleSentence string      `json:"example_sentence,omitempty"`
	Starred         bool        `json:"starred"`
	Familiarity     Familiarity `json:"familiarity"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// NoteInput is a partial note supplied by a caller. Nil fields are
// "not provided" and preserve whatever the existing row holds.
type NoteInput struct {
	EntryID         int64        `json:"entry_id"`
	Tags            []string     `json:"tags,omitempty"`
	Note            *string      `json:"note,omitempty"`
	ExampleSentence *string      `json:"example_sentence,omitempty"`
	Starred         *bool        `json:"starred,omitempty"`
	Familiarity     *Familiarity `json:"familiarity,omitempty"`
}
