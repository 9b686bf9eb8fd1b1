// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/web-research/internal/history"
	"github.com/pdiddy/web-research/internal/logging"
	"github.com/pdiddy/web-research/internal/research"
	"github.com/pdiddy/web-research/internal/search"
	"github.com/pdiddy/web-research/internal/secrets"
	"github.com/pdiddy/web-research/pkg/types"
)

const promptText = "Enter your research question: "

var researchCmd = &cobra.Command{
	Use:   "research [question]",
	Short: "Research a question and draft an answer from web results",
	Long: `Research sends the question to the search provider, formats each
returned result into a numbered source block, prints the drafted answer,
and saves the full outcome (query, answer, raw results) to a file.

The question may be passed as arguments or with --query. Without either,
research prompts for it on stdin. If the provider fails or returns
nothing, the answer says so and the run still completes.`,
	RunE: runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}
	applyResearchFlags(cmd, &cfg)

	log := logging.New(cfg.Log, cmd.ErrOrStderr())

	format, err := research.ParseFormat(string(cfg.Output.Format))
	if err != nil {
		return err
	}

	flagKey, _ := cmd.Flags().GetString("api-key")
	apiKey := secrets.Resolve(loadedSecrets, secrets.TavilyAPIKey, flagKey, v.GetString("tavily_api_key"))
	client, err := search.NewClient(apiKey,
		search.WithEndpoint(cfg.Search.Endpoint),
		search.WithUserAgent(cfg.Search.UserAgent),
		search.WithLogger(log),
	)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	query, err := resolveQuery(cmd, args, cmd.InOrStdin(), out)
	if err != nil {
		return err
	}

	r := research.New(client,
		research.WithProgress(out),
		research.WithLogger(log),
		research.WithMaxResults(cfg.Search.MaxResults),
	)
	outcome := r.Run(context.Background(), query)

	fmt.Fprintln(out, "\nFinal Answer:")
	fmt.Fprintln(out, outcome.Answer)

	noSave, _ := cmd.Flags().GetBool("no-save")
	if !noSave {
		if err := research.Save(outcome, cfg.Output.File, format); err != nil {
			return err
		}
		fmt.Fprintf(out, "Results saved to %s\n", cfg.Output.File)
	}

	if cfg.History.Enabled {
		recordHistory(context.Background(), cfg.History, outcome, log)
	}
	return nil
}

// applyResearchFlags overlays explicitly set command flags on cfg.
func applyResearchFlags(cmd *cobra.Command, cfg *types.Config) {
	if cmd.Flags().Changed("max-results") {
		cfg.Search.MaxResults, _ = cmd.Flags().GetInt("max-results")
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.File, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("format") {
		f, _ := cmd.Flags().GetString("format")
		cfg.Output.Format = types.OutputFormat(f)
	} else if cmd.Flags().Changed("output") {
		cfg.Output.Format = research.FormatForPath(cfg.Output.File)
	}
	if cfg.Output.File == "" {
		cfg.Output.File = research.DefaultResultsFile
	}
}

// resolveQuery takes the question from args, then --query, then an
// interactive prompt on in.
func resolveQuery(cmd *cobra.Command, args []string, in io.Reader, out io.Writer) (string, error) {
	if q := strings.TrimSpace(strings.Join(args, " ")); q != "" {
		return q, nil
	}
	if q, _ := cmd.Flags().GetString("query"); strings.TrimSpace(q) != "" {
		return strings.TrimSpace(q), nil
	}
	return promptQuery(in, out)
}

// promptQuery asks for a question and reads one line from in.
func promptQuery(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, promptText)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading query: %w", err)
	}
	q := strings.TrimSpace(line)
	if q == "" {
		return "", search.ErrEmptyQuery
	}
	return q, nil
}

// recordHistory stores the outcome. Failures are logged, never fatal.
func recordHistory(ctx context.Context, cfg types.HistoryConfig, o types.QueryOutcome, log zerolog.Logger) {
	store, err := history.NewStore(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("history unavailable; run not recorded")
		return
	}
	defer store.Close()

	e, err := store.Record(ctx, o)
	if err != nil {
		log.Warn().Err(err).Msg("recording run in history")
		return
	}
	log.Debug().Str("id", e.ID).Str("db", store.Path()).Msg("run recorded")
}

func init() {
	researchCmd.Flags().String("query", "", "research question (prompted for when omitted)")
	researchCmd.Flags().Int("max-results", 5, "maximum number of search results")
	researchCmd.Flags().String("output", "", "results file (default research_results.json)")
	researchCmd.Flags().String("format", "", "results file format: json or yaml")
	researchCmd.Flags().String("api-key", "", "search provider API key (default $TAVILY_API_KEY or .secrets/tavily-api-key)")
	researchCmd.Flags().Bool("no-save", false, "do not write the results file")

	rootCmd.AddCommand(researchCmd)
}
