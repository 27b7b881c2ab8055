package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexibase/lexi-core/internal/domain/entities"
	"github.com/lexibase/lexi-core/internal/domain/ports"
)

// reindexBatchSize is the number of entries embedded per batch request.
const reindexBatchSize = 64

// SearchHandler handles semantic search over cached entries. The index holds
// embeddings keyed by entry ID; hits are hydrated from the record store.
type SearchHandler struct {
	embedder ports.Embedder
	index    ports.EntryIndex
	store    ports.RecordStore
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(embedder ports.Embedder, index ports.EntryIndex, store ports.RecordStore) *SearchHandler {
	return &SearchHandler{
		embedder: embedder,
		index:    index,
		store:    store,
	}
}

// HandleSearch embeds the query, searches the index, and returns the
// matching entries. Entries deleted from the store since the last reindex
// are silently skipped.
func (h *SearchHandler) HandleSearch(ctx context.Context, query string, limit int) ([]entities.Entry, error) {
	if entities.NormalizeTerm(query) == "" {
		return nil, entities.NewValidation("query must not be empty")
	}

	embedding, err := h.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	ids, err := h.index.Search(ctx, embedding, limit)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	result := make([]entities.Entry, 0, len(ids))
	for _, id := range ids {
		entry, err := h.store.FindEntryByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("finding entry: %w", err)
		}
		if entry == nil {
			continue
		}
		result = append(result, *entry)
	}
	return result, nil
}

// HandleReindex re-embeds every cached entry and upserts it into the index.
// Returns the number of entries indexed.
func (h *SearchHandler) HandleReindex(ctx context.Context) (int, error) {
	indexed := 0
	offset := 0

	for {
		batch, err := h.store.ListEntries(ctx, reindexBatchSize, offset)
		if err != nil {
			return indexed, fmt.Errorf("listing entries: %w", err)
		}
		if len(batch) == 0 {
			return indexed, nil
		}

		texts := make([]string, len(batch))
		for i := range batch {
			texts[i] = EntryText(batch[i])
		}

		embeddings, err := h.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return indexed, fmt.Errorf("embedding entries: %w", err)
		}

		items := make([]ports.IndexedEntry, len(batch))
		for i := range batch {
			items[i] = ports.IndexedEntry{
				EntryID:   batch[i].ID,
				Text:      texts[i],
				Embedding: embeddings[i],
			}
		}

		if err := h.index.IndexEntries(ctx, items); err != nil {
			return indexed, fmt.Errorf("indexing entries: %w", err)
		}

		indexed += len(batch)
		offset += len(batch)
	}
}

// EntryText builds the text embedded for an entry: the term, its lemma and
// part of speech, and any definition strings found in the payload.
func EntryText(entry entities.Entry) string {
	parts := make([]string, 0, 4)
	parts = append(parts, entry.Term)
	if entry.Lemma != "" && entry.Lemma != entry.Term {
		parts = append(parts, entry.Lemma)
	}
	if entry.PartOfSpeech != "" {
		parts = append(parts, entry.PartOfSpeech)
	}
	parts = append(parts, collectDefinitions(entry.Payload)...)
	return strings.Join(parts, "\n")
}

// collectDefinitions walks the payload for definition strings. Payloads are
// arbitrary structured data; anything under a "definition" or "definitions"
// key is picked up, nested lists included.
func collectDefinitions(value any) []string {
	var out []string
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			if key == "definition" || key == "definitions" {
				out = append(out, collectStrings(child)...)
				continue
			}
			out = append(out, collectDefinitions(child)...)
		}
	case []any:
		for _, child := range v {
			out = append(out, collectDefinitions(child)...)
		}
	}
	return out
}

// collectStrings gathers string leaves from a payload fragment.
func collectStrings(value any) []string {
	switch v := value.(type) {
	case string:
		if v != "" {
			return []string{v}
		}
	case []any:
		var out []string
		for _, child := range v {
			out = append(out, collectStrings(child)...)
		}
		return out
	case map[string]any:
		if s, ok := v["definition"].(string); ok && s != "" {
			return []string{s}
		}
	}
	return nil
}
