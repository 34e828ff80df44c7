package dictionaryapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public English entries endpoint
const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en/"

var ErrNotFound = errors.New("word not found")

// Client implements integration with DictionaryAPI
// docs: https://dictionaryapi.dev/
type Client struct {
	client  *http.Client
	baseURL string
}

// Get fetches all entries for the word.
// The word is escaped as a single path segment.
func (c Client) Get(ctx context.Context, word string) (items []WordResponse, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+url.PathEscape(word), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dictionaryapi.dev: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusNotFound {
			var notFound ErrorResponse
			if jerr := json.Unmarshal(body, &notFound); jerr == nil {
				log.Debug().Str("word", word).Str("title", notFound.Title).Msg("dictionaryapi has no entry")
			}
			return nil, ErrNotFound
		}
		log.Error().
			Str("status", resp.Status).
			Str("body", string(body)).
			Msg("unsuccessfull response from dictionaryapi")
		return nil, fmt.Errorf("unsuccessfull API response %v", resp.StatusCode)
	}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return items, nil
}

// NewClient creates Client for the given base URL.
// Empty baseURL falls back to DefaultBaseURL, nil httpClient to http.DefaultClient.
func NewClient(httpClient *http.Client, baseURL string) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return Client{client: httpClient, baseURL: baseURL}
}
