package entities

import "time"

// Variant represents an alternate surface form of an entry, such as a
// plural or a past tense. Variants are append-only.
type Variant struct {
	ID          int64     `json:"id"`
	EntryID     int64     `json:"entry_id"`
	Variant     string    `json:"variant"`
	VariantType string    `json:"variant_type,omitempty"` // Free-text classification, e.g. "plural"
	CreatedAt   time.Time `json:"created_at"`
}

// VariantInput is the caller-supplied shape for recording a new variant.
type VariantInput struct {
	EntryID     int64   `json:"entry_id"`
	Variant     string  `json:"variant"`
	VariantType *string `json:"variant_type,omitempty"`
}
