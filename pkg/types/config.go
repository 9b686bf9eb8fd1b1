// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SearchConfig holds settings for the search client.
type SearchConfig struct {
	// MaxResults caps the number of provider results (default 5).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// Endpoint is the provider search URL. Overridden in tests.
	Endpoint string `json:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// UserAgent is the User-Agent header sent with provider requests
	// (e.g. "web-research/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// OutputFormat selects the persisted outcome format.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// OutputConfig holds settings for persisting the final outcome.
type OutputConfig struct {
	// File is the path the outcome is written to (default "research_results.json").
	File string `json:"file" yaml:"file" mapstructure:"file"`

	// Format selects json or yaml.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`
}

// HistoryConfig holds settings for the local run history.
type HistoryConfig struct {
	// Enabled controls whether completed runs are recorded.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir is the directory holding history.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default number of entries returned by list queries (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings for the pipeline.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Output  OutputConfig  `json:"output" yaml:"output" mapstructure:"output"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
