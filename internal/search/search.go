// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search issues web searches against the Tavily search API and
// returns the provider's results as types.SearchResult records.
package search

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/pdiddy/web-research/internal/textutil"
	"github.com/pdiddy/web-research/pkg/types"
)

const (
	// DefaultEndpoint is the Tavily search endpoint.
	DefaultEndpoint = "https://api.tavily.com/search"

	// DefaultMaxResults is used when a caller passes a result cap below 1.
	DefaultMaxResults = 5

	// searchDepth requests Tavily's slower, higher-quality retrieval.
	searchDepth = "advanced"

	defaultUserAgent = "web-research"
)

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the provider endpoint. Blank values are ignored.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if e := strings.TrimSpace(endpoint); e != "" {
			c.endpoint = e
		}
	}
}

// WithHTTPClient replaces the resty client used for provider requests.
func WithHTTPClient(hc *resty.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithUserAgent sets the User-Agent header. Blank values are ignored.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// Client performs searches against the provider. It holds no mutable
// state after construction and is safe for concurrent use.
type Client struct {
	apiKey    string
	endpoint  string
	userAgent string
	http      *resty.Client
	log       zerolog.Logger
}

// NewClient returns a Client authenticated with apiKey. A blank key
// yields ErrMissingAPIKey.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:    key,
		endpoint:  DefaultEndpoint,
		userAgent: defaultUserAgent,
		http:      resty.New(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Endpoint returns the provider URL the client posts to.
func (c *Client) Endpoint() string { return c.endpoint }

// Search sends one request for query, asking for at most maxResults
// results. A maxResults below 1 uses DefaultMaxResults. Provider and
// transport failures are returned as *ProviderError; an empty query is
// rejected with ErrEmptyQuery before any request is made.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	if maxResults < 1 {
		maxResults = DefaultMaxResults
	}

	body := tavilyRequest{
		APIKey:        c.apiKey,
		Query:         q,
		SearchDepth:   searchDepth,
		MaxResults:    maxResults,
		IncludeAnswer: true,
	}

	c.log.Debug().
		Str("endpoint", c.endpoint).
		Str("query", q).
		Int("max_results", maxResults).
		Msg("sending search request")

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", c.userAgent).
		SetAuthToken(c.apiKey).
		SetBody(body).
		Post(c.endpoint)
	if err != nil {
		c.log.Error().Err(err).Str("endpoint", c.endpoint).Msg("search request failed")
		return nil, &ProviderError{Err: err}
	}

	if !resp.IsSuccess() {
		perr := &ProviderError{
			StatusCode: resp.StatusCode(),
			Body:       textutil.Truncate(strings.TrimSpace(resp.String()), maxErrorBody),
		}
		c.log.Error().
			Int("status", perr.StatusCode).
			Str("response", perr.Body).
			Msg("search provider returned an error")
		return nil, perr
	}

	var tr tavilyResponse
	if err := json.Unmarshal(resp.Body(), &tr); err != nil {
		c.log.Error().Err(err).Msg("parsing search response")
		return nil, &ProviderError{StatusCode: resp.StatusCode(), Err: err}
	}

	if tr.Answer != "" {
		c.log.Debug().Int("answer_len", len(tr.Answer)).Msg("provider returned an answer hint")
	}

	results := make([]types.SearchResult, 0, len(tr.Results))
	for _, r := range tr.Results {
		results = append(results, types.SearchResult{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			Score:         r.Score,
			PublishedDate: r.PublishedDate,
		})
	}

	c.log.Info().Str("query", q).Int("result_count", len(results)).Msg("search completed")
	return results, nil
}

const maxErrorBody = 512

// Tavily API JSON structures. Domain filters are sent as explicit nulls.
type tavilyRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth"`
	MaxResults     int      `json:"max_results"`
	IncludeAnswer  bool     `json:"include_answer"`
	IncludeDomains []string `json:"include_domains"`
	ExcludeDomains []string `json:"exclude_domains"`
}

type tavilyResponse struct {
	Query   string         `json:"query"`
	Answer  string         `json:"answer"`
	Results []tavilyResult `json:"results"`
}

type tavilyResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date"`
}
