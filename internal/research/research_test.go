// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/web-research/internal/search"
	"github.com/pdiddy/web-research/pkg/types"
)

// --- fake searcher ---

type fakeSearcher struct {
	results []types.SearchResult
	err     error

	calls      int
	gotQuery   string
	gotResults int
}

func (f *fakeSearcher) Search(_ context.Context, query string, maxResults int) ([]types.SearchResult, error) {
	f.calls++
	f.gotQuery = query
	f.gotResults = maxResults
	return f.results, f.err
}

func franceResults() []types.SearchResult {
	return []types.SearchResult{
		{Title: "France", Content: "Paris is the capital.", URL: "http://example.com/a"},
	}
}

// --- Run ---

func TestRunCapitalOfFrance(t *testing.T) {
	fs := &fakeSearcher{results: franceResults()}
	r := New(fs)

	out := r.Run(context.Background(), "capital of France")

	assert.Equal(t, "capital of France", out.Query)
	assert.Equal(t, franceResults(), out.SearchResults)
	assert.NoError(t, out.ProviderErr)
	assert.False(t, out.Degraded())
	for _, want := range []string{
		"Research findings for: capital of France",
		"Source 1:",
		"Title: France",
		"Content: Paris is the capital.",
		"Source: http://example.com/a",
	} {
		assert.Contains(t, out.Answer, want)
	}
}

func TestRunPassesQueryAndDefaultCap(t *testing.T) {
	fs := &fakeSearcher{}
	New(fs).Run(context.Background(), "go generics")

	assert.Equal(t, 1, fs.calls)
	assert.Equal(t, "go generics", fs.gotQuery)
	assert.Equal(t, DefaultMaxResults, fs.gotResults)
}

func TestRunWithMaxResults(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"explicit", 9, 9},
		{"zero ignored", 0, DefaultMaxResults},
		{"negative ignored", -1, DefaultMaxResults},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeSearcher{}
			New(fs, WithMaxResults(tt.in)).Run(context.Background(), "q")
			assert.Equal(t, tt.want, fs.gotResults)
		})
	}
}

func TestRunEmptyResults(t *testing.T) {
	for _, query := range []string{"capital of France", "", "ünïcödé ✓"} {
		fs := &fakeSearcher{results: []types.SearchResult{}}
		out := New(fs).Run(context.Background(), query)

		assert.Equal(t, query, out.Query)
		assert.Equal(t, FallbackAnswer, out.Answer)
		assert.NotNil(t, out.SearchResults)
		assert.Empty(t, out.SearchResults)
		assert.False(t, out.Degraded())
	}
}

func TestRunNilResults(t *testing.T) {
	out := New(&fakeSearcher{}).Run(context.Background(), "q")
	assert.Equal(t, FallbackAnswer, out.Answer)
	assert.Equal(t, []types.SearchResult{}, out.SearchResults)
}

func TestRunProviderErrorDegrades(t *testing.T) {
	perr := &search.ProviderError{StatusCode: 503}
	fs := &fakeSearcher{results: franceResults(), err: perr}

	var progress bytes.Buffer
	out := New(fs, WithProgress(&progress)).Run(context.Background(), "q")

	assert.Equal(t, FallbackAnswer, out.Answer)
	assert.Empty(t, out.SearchResults)
	assert.True(t, out.Degraded())

	var got *search.ProviderError
	require.True(t, errors.As(out.ProviderErr, &got))
	assert.Equal(t, 503, got.StatusCode)
	assert.Contains(t, progress.String(), "Error in search:")
}

func TestRunBlankQueryNotDegraded(t *testing.T) {
	fs := &fakeSearcher{err: search.ErrEmptyQuery}

	var progress bytes.Buffer
	out := New(fs, WithProgress(&progress)).Run(context.Background(), "   ")

	assert.Equal(t, FallbackAnswer, out.Answer)
	assert.Empty(t, out.SearchResults)
	assert.NoError(t, out.ProviderErr)
	assert.False(t, out.Degraded())
	assert.Contains(t, progress.String(), "Error in search:")
}

func TestRunLogsFailureOnceAtDebug(t *testing.T) {
	fs := &fakeSearcher{err: &search.ProviderError{StatusCode: 500}}

	var logs bytes.Buffer
	log := zerolog.New(&logs).Level(zerolog.InfoLevel)
	out := New(fs, WithLogger(log)).Run(context.Background(), "q")

	assert.True(t, out.Degraded())
	assert.Empty(t, logs.String())
}

func TestRunPreservesResultsUnmodified(t *testing.T) {
	results := []types.SearchResult{
		{Title: "B", Content: "second", URL: "http://b", Score: 0.4},
		{Title: "A", Content: "first", URL: "http://a", Score: 0.9, PublishedDate: "2024-05-01"},
		{Title: "", Content: "", URL: ""},
	}
	want := append([]types.SearchResult(nil), results...)

	out := New(&fakeSearcher{results: results}).Run(context.Background(), "q")
	assert.Equal(t, want, out.SearchResults)
}

func TestRunProgressLines(t *testing.T) {
	tests := []struct {
		name    string
		results []types.SearchResult
		want    []string
	}{
		{
			"with results",
			franceResults(),
			[]string{"Researching your query...", "Analyzing search results...", "Drafting your answer..."},
		},
		{
			"no results",
			nil,
			[]string{"Researching your query..."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var progress bytes.Buffer
			New(&fakeSearcher{results: tt.results}, WithProgress(&progress)).Run(context.Background(), "q")
			lines := strings.Split(strings.TrimSpace(progress.String()), "\n")
			assert.Equal(t, tt.want, lines)
		})
	}
}
