// Package dictsource fetches definitions from an external dictionary API
// (dictionaryapi.dev or anything wire-compatible). Fetched results are fed
// through the ordinary upsert path; nothing here touches the store directly.
package dictsource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lexibase/lexi-core/internal/domain/entities"
	"github.com/lexibase/lexi-core/internal/infrastructure/config"
)

const requestTimeout = 10 * time.Second

// Client talks to a dictionaryapi.dev-compatible endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new dictionary source client.
func NewClient(cfg config.SourceConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// apiEntry mirrors one element of the dictionaryapi.dev response array.
type apiEntry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic,omitempty"`
	Phonetics []struct {
		Text  string `json:"text,omitempty"`
		Audio string `json:"audio,omitempty"`
	} `json:"phonetics,omitempty"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string   `json:"definition"`
			Example    string   `json:"example,omitempty"`
			Synonyms   []string `json:"synonyms,omitempty"`
			Antonyms   []string `json:"antonyms,omitempty"`
		} `json:"definitions"`
	} `json:"meanings"`
}

// Fetch looks up a term and shapes the first result into an EntryInput ready
// for the upsert operation. A term the source does not know fails with a
// not-found domain error.
func (c *Client) Fetch(ctx context.Context, language, term string) (entities.EntryInput, error) {
	term = entities.NormalizeTerm(term)
	if term == "" {
		return entities.EntryInput{}, entities.NewValidation("term must not be empty")
	}
	if language == "" {
		language = entities.DefaultLanguage
	}

	endpoint := fmt.Sprintf("%s/api/v2/entries/%s/%s", c.baseURL, url.PathEscape(language), url.PathEscape(term))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return entities.EntryInput{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", "lexi-cli")

	resp, err := c.http.Do(req)
	if err != nil {
		return entities.EntryInput{}, fmt.Errorf("fetching definition: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return entities.EntryInput{}, entities.NewNotFound("no definition found for %q", term)
	}
	if resp.StatusCode != http.StatusOK {
		return entities.EntryInput{}, fmt.Errorf("dictionary source returned status: %s", resp.Status)
	}

	var results []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return entities.EntryInput{}, fmt.Errorf("decoding response: %w", err)
	}
	if len(results) == 0 {
		return entities.EntryInput{}, entities.NewNotFound("no definition found for %q", term)
	}

	return buildInput(language, results[0]), nil
}

// buildInput shapes one API result into a partial entry.
func buildInput(language string, result apiEntry) entities.EntryInput {
	in := entities.EntryInput{
		Term:     &result.Word,
		Language: &language,
		Payload:  buildPayload(result),
	}
	if len(result.Meanings) > 0 && result.Meanings[0].PartOfSpeech != "" {
		in.PartOfSpeech = &result.Meanings[0].PartOfSpeech
	}
	return in
}

// buildPayload round-trips the typed result through JSON into the generic
// map shape the entry payload column stores.
func buildPayload(result apiEntry) map[string]any {
	data, err := json.Marshal(result)
	if err != nil {
		return nil
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	return payload
}
