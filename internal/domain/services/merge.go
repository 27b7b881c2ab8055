// Package services implements the record reconciliation logic: deciding
// whether a request addresses an existing record and computing the full
// record to persist from partial input.
package services

import (
	"time"

	"github.com/lexibase/lexi-core/internal/domain/entities"
)

// resolve implements the per-field merge rule: the explicit input value when
// provided, the prior record's value when one exists, the default otherwise.
func resolve[T any](input *T, prior T, hasPrior bool, def T) T {
	if input != nil {
		return *input
	}
	if hasPrior {
		return prior
	}
	return def
}

// valueOr returns the pointed-to value, or def when p is nil.
func valueOr[T any](p *T, def T) T {
	if p != nil {
		return *p
	}
	return def
}

// MergeEntry computes the full entry to persist from an optional existing
// record and a partial input. It performs no I/O.
//
// Timestamps: createdAt is preserved from the existing record and set only
// on first creation; updatedAt is always now; fetchedAt is the input value
// when provided, else now — a refresh re-stamps fetch time regardless of the
// prior value.
func MergeEntry(existing *entities.Entry, in entities.EntryInput, now time.Time) entities.Entry {
	var prior entities.Entry
	hasPrior := existing != nil
	if hasPrior {
		prior = *existing
	}

	merged := entities.Entry{
		ID:           prior.ID,
		Term:         entities.NormalizeTerm(resolve(in.Term, prior.Term, hasPrior, "")),
		Language:     resolve(in.Language, prior.Language, hasPrior, entities.DefaultLanguage),
		Lemma:        resolve(in.Lemma, prior.Lemma, hasPrior, ""),
		PartOfSpeech: resolve(in.PartOfSpeech, prior.PartOfSpeech, hasPrior, ""),
		Payload:      prior.Payload,
		FetchedAt:    valueOr(in.FetchedAt, now),
		CreatedAt:    prior.CreatedAt,
		UpdatedAt:    now,
	}
	if in.Payload != nil {
		merged.Payload = in.Payload
	}
	if !hasPrior {
		merged.CreatedAt = now
	}
	return merged
}

// MergeNote computes the full note to persist for a (user, entry) pair from
// an optional existing row and a partial input. Defaults on first creation:
// starred false, familiarity "new".
func MergeNote(existing *entities.Note, in entities.NoteInput, userID string, now time.Time) entities.Note {
	var prior entities.Note
	hasPrior := existing != nil
	if hasPrior {
		prior = *existing
	}

	merged := entities.Note{
		ID:              prior.ID,
		EntryID:         in.EntryID,
		UserID:          userID,
		Tags:            prior.Tags,
		Note:            resolve(in.Note, prior.Note, hasPrior, ""),
		ExampleSentence: resolve(in.ExampleSentence, prior.ExampleSentence, hasPrior, ""),
		Starred:         resolve(in.Starred, prior.Starred, hasPrior, false),
		Familiarity:     resolve(in.Familiarity, prior.Familiarity, hasPrior, entities.FamiliarityNew),
		CreatedAt:       prior.CreatedAt,
		UpdatedAt:       now,
	}
	if in.Tags != nil {
		merged.Tags = in.Tags
	}
	if !hasPrior {
		merged.CreatedAt = now
	}
	return merged
}

// NewVariant builds the variant row to append. Variants carry no prior
// state; every call inserts.
func NewVariant(in entities.VariantInput, now time.Time) entities.Variant {
	return entities.Variant{
		EntryID:     in.EntryID,
		Variant:     entities.NormalizeTerm(in.Variant),
		VariantType: valueOr(in.VariantType, ""),
		CreatedAt:   now,
	}
}

// NewLookup builds the lookup history row to append. lookedAt defaults to
// now when the caller does not supply an explicit event time.
func NewLookup(in entities.LookupInput, userID string, now time.Time) entities.Lookup {
	return entities.Lookup{
		UserID:   userID,
		Term:     entities.NormalizeTerm(in.Term),
		Language: valueOr(in.Language, entities.DefaultLanguage),
		EntryID:  in.EntryID,
		LookedAt: valueOr(in.LookedAt, now),
		Source:   valueOr(in.Source, ""),
		Context:  valueOr(in.Context, ""),
	}
}
