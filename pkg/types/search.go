// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the web-research pipeline.
// Implements: search client results (SearchResult), the orchestrator's
// packaged run output (QueryOutcome), and stage configuration.
package types

// SearchResult is one record returned by the search provider. Missing
// provider fields decode to their zero value.
type SearchResult struct {
	// Title is the page title as returned by the provider.
	Title string `json:"title" yaml:"title"`

	// URL is the source page address.
	URL string `json:"url" yaml:"url"`

	// Content is the snippet or body text the provider extracted.
	Content string `json:"content" yaml:"content"`

	// Score is the provider's relevance score, when present.
	Score float64 `json:"score,omitempty" yaml:"score,omitempty"`

	// PublishedDate is the provider-reported publication date, when present.
	PublishedDate string `json:"published_date,omitempty" yaml:"published_date,omitempty"`
}

// QueryOutcome is the packaged result of one research run. Field order
// here is the field order of the persisted document.
type QueryOutcome struct {
	// Query is the operator's research question.
	Query string `json:"query" yaml:"query"`

	// Answer is the synthesized text, or the fallback message when the
	// provider returned nothing.
	Answer string `json:"answer" yaml:"answer"`

	// SearchResults is the provider sequence, unmodified.
	SearchResults []SearchResult `json:"search_results" yaml:"search_results"`

	// ProviderErr holds the recovered provider failure, if any. It lets
	// callers tell "no results" apart from "provider unreachable" and is
	// never persisted.
	ProviderErr error `json:"-" yaml:"-"`
}

// Degraded reports whether the outcome was produced after a provider failure.
func (o QueryOutcome) Degraded() bool {
	return o.ProviderErr != nil
}
