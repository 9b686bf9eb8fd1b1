// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package draft turns raw search results into the formatted research answer.
// Everything here is pure string templating: no I/O, no summarization.
package draft

import (
	"fmt"
	"strings"

	"github.com/pdiddy/web-research/pkg/types"
)

const (
	headerFormat = "Research findings for: %s\n\n"
	preamble     = "Based on the search results, here's a summary of the information:\n\n"
)

// ExtractKeyInformation formats one block per result, preserving input
// order. Each block lists the title, content, and source URL in that order.
func ExtractKeyInformation(results []types.SearchResult) []string {
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, FormatBlock(r))
	}
	return blocks
}

// FormatBlock renders a single result as a display block.
func FormatBlock(r types.SearchResult) string {
	return fmt.Sprintf("Title: %s\nContent: %s\nSource: %s\n", r.Title, r.Content, r.URL)
}

// SynthesizeAnswer assembles the answer text: a header naming the query,
// a fixed preamble, then each block labelled "Source N:" (1-based).
func SynthesizeAnswer(query string, blocks []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, headerFormat, query)
	b.WriteString(preamble)
	for i, block := range blocks {
		fmt.Fprintf(&b, "Source %d:\n%s\n", i+1, block)
	}
	return b.String()
}
