package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"goodnews/internal/source"
)

const (
	defaultEndpoint = "https://api.tavily.com/search"
	searchTopic     = "general"
	searchDepth     = "basic"
)

// TavilyStrategy queries the Tavily search API for candidate URLs.
// The endpoint requires POST with a JSON payload and bearer auth.
type TavilyStrategy struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

var _ source.Strategy = (*TavilyStrategy)(nil)

// NewTavilyStrategy wires an HTTP client; timeout bounds a single search call.
func NewTavilyStrategy(endpoint, apiKey string, timeout time.Duration) *TavilyStrategy {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &TavilyStrategy{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// Name identifies the strategy inside the aggregate source.
func (t *TavilyStrategy) Name() string {
	return "tavily"
}

type searchRequest struct {
	Query       string `json:"query"`
	Topic       string `json:"topic"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int    `json:"max_results"`
}

type searchResponse struct {
	Results []struct {
		URL string `json:"url"`
	} `json:"results"`
}

// Discover returns result URLs in the backend's relevance order.
func (t *TavilyStrategy) Discover(ctx context.Context, query string, maxResults int) ([]string, error) {
	body, err := json.Marshal(searchRequest{
		Query:       query,
		Topic:       searchTopic,
		SearchDepth: searchDepth,
		MaxResults:  maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tavily error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	urls := make([]string, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}

	return urls, nil
}
