// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the web-research CLI.
// It wires the search client, the drafting stage, result persistence,
// and the local run history behind cobra subcommands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/web-research/internal/research"
	"github.com/pdiddy/web-research/internal/search"
	"github.com/pdiddy/web-research/internal/secrets"
	"github.com/pdiddy/web-research/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the web-research CLI.
var rootCmd = &cobra.Command{
	Use:   "web-research",
	Short: "Search the web and draft a sourced answer",
	Long: `web-research sends a research question to the Tavily search API and
formats the returned results into a readable answer that lists every
source. Each run is saved to a results file and recorded in a local
history database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./web-research.yaml or ~/.config/web-research/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// setDefaults registers every config key so env overrides and
// viper.Unmarshal see them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("search.max_results", search.DefaultMaxResults)
	v.SetDefault("search.endpoint", search.DefaultEndpoint)
	v.SetDefault("search.user_agent", "web-research/"+version)
	v.SetDefault("output.file", research.DefaultResultsFile)
	v.SetDefault("output.format", string(types.FormatJSON))
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.dir", ".web-research")
	v.SetDefault("history.max_results", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("tavily_api_key", "")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("web-research")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "web-research"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("WEB_RESEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("tavily_api_key", "TAVILY_API_KEY", "WEB_RESEARCH_TAVILY_API_KEY")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged viper settings.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
