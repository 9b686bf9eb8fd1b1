// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/web-research/pkg/types"
)

// DefaultResultsFile is where Save writes when no path is configured.
const DefaultResultsFile = "research_results.json"

// ParseFormat validates an output format name. Empty means JSON.
func ParseFormat(s string) (types.OutputFormat, error) {
	switch types.OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case types.FormatJSON, "":
		return types.FormatJSON, nil
	case types.FormatYAML, "yml":
		return types.FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use json or yaml", s)
	}
}

// FormatForPath picks the format implied by a file extension.
func FormatForPath(path string) types.OutputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return types.FormatYAML
	default:
		return types.FormatJSON
	}
}

// Encode writes o to w. JSON output is indented by four spaces and keeps
// non-ASCII and HTML characters unescaped.
func Encode(o types.QueryOutcome, w io.Writer, format types.OutputFormat) error {
	if o.SearchResults == nil {
		o.SearchResults = []types.SearchResult{}
	}

	switch format {
	case types.FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		if err := enc.Encode(o); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	case types.FormatYAML:
		data, err := yaml.Marshal(o)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}

// Save writes o to path, replacing any existing content.
func Save(o types.QueryOutcome, path string, format types.OutputFormat) error {
	if path == "" {
		path = DefaultResultsFile
	}

	var buf bytes.Buffer
	if err := Encode(o, &buf, format); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Load reads an outcome written by Save. The format follows the file
// extension: .yaml and .yml are YAML, anything else JSON.
func Load(path string) (types.QueryOutcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.QueryOutcome{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var o types.QueryOutcome
	switch FormatForPath(path) {
	case types.FormatYAML:
		if err := yaml.Unmarshal(data, &o); err != nil {
			return types.QueryOutcome{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &o); err != nil {
			return types.QueryOutcome{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	if o.SearchResults == nil {
		o.SearchResults = []types.SearchResult{}
	}
	return o, nil
}
