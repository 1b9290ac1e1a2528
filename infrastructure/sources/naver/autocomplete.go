// ABOUTME: Naver search autocomplete client
// ABOUTME: Returns autocomplete and related-search suggestions for a seed keyword

package naver

import (
	"context"
	"net/url"
	"strings"

	"keywords-app-api/core/domain"
	"keywords-app-api/core/interfaces"
	"keywords-app-api/infrastructure/sources/upstream"
)

const (
	// AutocompleteSourceName identifies this upstream in errors and metrics
	AutocompleteSourceName = "naver-autocomplete"

	DefaultAutocompleteURL = "https://ac.search.naver.com/nx/ac"
)

// AutocompleteClient implements SuggestionSource
type AutocompleteClient struct {
	http     interfaces.HTTPClient
	endpoint string
}

// AutocompleteOption configures an AutocompleteClient
type AutocompleteOption func(*AutocompleteClient)

// WithAutocompleteURL overrides the endpoint
func WithAutocompleteURL(u string) AutocompleteOption {
	return func(c *AutocompleteClient) { c.endpoint = u }
}

// NewAutocompleteClient creates a client. The endpoint needs no credentials.
// Call outcomes are recorded by the long-tail service, which owns the backoff gate.
func NewAutocompleteClient(httpClient interfaces.HTTPClient, opts ...AutocompleteOption) *AutocompleteClient {
	c := &AutocompleteClient{
		http:     httpClient,
		endpoint: DefaultAutocompleteURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// items[0] holds autocomplete entries, items[1] related searches.
// Each entry is an array whose first element is the text.
type autocompleteResponse struct {
	Items [][][]interface{} `json:"items"`
}

// FetchSuggestions returns autocomplete entries followed by related searches
func (c *AutocompleteClient) FetchSuggestions(ctx context.Context, keyword string) ([]domain.Suggestion, error) {
	params := url.Values{}
	params.Set("q", keyword)
	params.Set("con", "0")
	params.Set("frm", "nv")
	params.Set("ans", "2")
	params.Set("r_format", "json")
	params.Set("r_enc", "UTF-8")
	params.Set("st", "100")
	params.Set("q_enc", "UTF-8")

	headers := map[string]string{
		"Referer": "https://search.naver.com",
		"Accept":  "application/json",
	}

	var out autocompleteResponse
	if err := upstream.GetJSON(ctx, c.http, AutocompleteSourceName, c.endpoint+"?"+params.Encode(), headers, &out); err != nil {
		return nil, err
	}

	var suggestions []domain.Suggestion
	origins := []domain.CandidateOrigin{domain.OriginAutocomplete, domain.OriginRelated}
	for i, origin := range origins {
		if i >= len(out.Items) {
			break
		}
		rank := 0
		for _, entry := range out.Items[i] {
			if len(entry) == 0 {
				continue
			}
			text, ok := entry[0].(string)
			if !ok || strings.TrimSpace(text) == "" {
				continue
			}
			rank++
			suggestions = append(suggestions, domain.Suggestion{
				Text:   text,
				Origin: origin,
				Rank:   rank,
			})
		}
	}
	return suggestions, nil
}
