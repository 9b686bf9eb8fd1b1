// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a setting the client cannot run without.
// It is fatal: no search is attempted.
type ConfigurationError struct {
	// Key names the missing setting (e.g. "TAVILY_API_KEY").
	Key string
	Msg string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Msg)
}

// ErrMissingAPIKey is returned by NewClient when no credential is supplied.
var ErrMissingAPIKey = &ConfigurationError{
	Key: "TAVILY_API_KEY",
	Msg: "search provider API key not found; set TAVILY_API_KEY or write it to .secrets/tavily-api-key",
}

// ErrEmptyQuery is returned when Search is called with a blank query.
var ErrEmptyQuery = errors.New("query is empty: provide a research question")

// ProviderError reports a failed provider call: a transport error, a
// non-2xx status, or an unparseable response body.
type ProviderError struct {
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int

	// Body is the (truncated) response body for non-2xx replies.
	Body string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("search provider response (HTTP %d): %v", e.StatusCode, e.Err)
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("search provider returned HTTP %d: %s", e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("search provider returned HTTP %d", e.StatusCode)
	default:
		return fmt.Sprintf("search provider request: %v", e.Err)
	}
}

func (e *ProviderError) Unwrap() error { return e.Err }
