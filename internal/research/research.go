// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research runs one research pass: search, then draft, then
// package the outcome. Provider failures never surface to the caller;
// they degrade to the fallback answer and are kept on the outcome.
package research

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/pdiddy/web-research/internal/draft"
	"github.com/pdiddy/web-research/internal/search"
	"github.com/pdiddy/web-research/pkg/types"
)

// FallbackAnswer is the answer used when the provider returns nothing.
const FallbackAnswer = "I couldn't find any information on this topic. Please try a different query."

// DefaultMaxResults is the result cap requested from the provider.
const DefaultMaxResults = 5

// Searcher fetches results for a query. *search.Client implements it.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]types.SearchResult, error)
}

// Option configures a Researcher.
type Option func(*Researcher)

// WithProgress sets the writer that receives operator progress lines.
func WithProgress(w io.Writer) Option {
	return func(r *Researcher) {
		if w != nil {
			r.progress = w
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Researcher) { r.log = log }
}

// WithMaxResults sets the provider result cap. Values below 1 are ignored.
func WithMaxResults(n int) Option {
	return func(r *Researcher) {
		if n >= 1 {
			r.maxResults = n
		}
	}
}

// Researcher sequences the search and draft stages.
type Researcher struct {
	searcher   Searcher
	progress   io.Writer
	log        zerolog.Logger
	maxResults int
}

// New returns a Researcher that searches with s.
func New(s Searcher, opts ...Option) *Researcher {
	r := &Researcher{
		searcher:   s,
		progress:   io.Discard,
		log:        zerolog.Nop(),
		maxResults: DefaultMaxResults,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run researches query and returns the packaged outcome. It never
// returns an error: a failed search yields the fallback answer with
// ProviderErr set. A blank query also yields the fallback answer but is
// not marked degraded.
func (r *Researcher) Run(ctx context.Context, query string) types.QueryOutcome {
	fmt.Fprintln(r.progress, "Researching your query...")
	results, err := r.searcher.Search(ctx, query, r.maxResults)
	var providerErr error
	if err != nil {
		r.log.Debug().Err(err).Str("query", query).Msg("continuing without results")
		fmt.Fprintf(r.progress, "Error in search: %v\n", err)
		results = nil
		// A blank query never reaches the provider.
		if !errors.Is(err, search.ErrEmptyQuery) {
			providerErr = err
		}
	}

	if len(results) == 0 {
		return types.QueryOutcome{
			Query:         query,
			Answer:        FallbackAnswer,
			SearchResults: []types.SearchResult{},
			ProviderErr:   providerErr,
		}
	}

	fmt.Fprintln(r.progress, "Analyzing search results...")
	blocks := draft.ExtractKeyInformation(results)

	fmt.Fprintln(r.progress, "Drafting your answer...")
	answer := draft.SynthesizeAnswer(query, blocks)

	r.log.Debug().Str("query", query).Int("sources", len(blocks)).Msg("answer drafted")

	return types.QueryOutcome{
		Query:         query,
		Answer:        answer,
		SearchResults: results,
	}
}
