// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/web-research/internal/history"
	"github.com/pdiddy/web-research/internal/research"
	"github.com/pdiddy/web-research/internal/textutil"
	"github.com/pdiddy/web-research/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and export past research runs",
	Long: `History reads the local SQLite database that records every completed
research run. Use subcommands to list runs, show one in full, or export.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "List past runs, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background(), listOptsFromFlags(cmd, args))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistoryList(entries, jsonOutput, cmd.OutOrStdout())
}

func formatHistoryList(entries []history.Entry, jsonOutput bool, w io.Writer) error {
	if jsonOutput {
		if entries == nil {
			entries = []history.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-36s  %-20s  %-7s  %s\n", "ID", "When", "Sources", "Query")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, e := range entries {
		sources := fmt.Sprintf("%d", len(e.SearchResults))
		if e.Degraded {
			sources = "failed"
		}
		fmt.Fprintf(w, "%-36s  %-20s  %-7s  %s\n",
			e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04:05"), sources, textutil.Truncate(e.Query, 60))
	}
	fmt.Fprintf(w, "\n%d runs\n", len(entries))
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the answer and sources of one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return research.Encode(e.QueryOutcome, w, types.FormatJSON)
	}

	fmt.Fprintf(w, "Run %s (%s)\n\n", e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, e.Answer)
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export [filter]",
	Short: "Export past runs to YAML or JSON",
	Long: `Export writes recorded runs (all of them, or those whose query matches
the filter) to stdout or to --out as YAML or JSON.`,
	RunE: runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	f, err := research.ParseFormat(format)
	if err != nil {
		return err
	}

	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := listOptsFromFlags(cmd, args)

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		return store.Export(context.Background(), cmd.OutOrStdout(), f, opts)
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := store.Export(context.Background(), file, f, opts); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outPath)
	return nil
}

// --- shared helpers ---

func openHistory(cmd *cobra.Command) (*history.Store, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("history-dir") {
		cfg.History.Dir, _ = cmd.Flags().GetString("history-dir")
	}
	return history.NewStore(cfg.History)
}

func listOptsFromFlags(cmd *cobra.Command, args []string) history.ListOptions {
	filter, _ := cmd.Flags().GetString("query")
	if filter == "" && len(args) > 0 {
		filter = strings.Join(args, " ")
	}
	limit, _ := cmd.Flags().GetInt("limit")
	return history.ListOptions{Query: filter, Limit: limit}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	historyCmd.PersistentFlags().String("history-dir", "", "directory holding history.db (default .web-research)")
	historyCmd.PersistentFlags().String("query", "", "keep runs whose query contains this text")
	historyCmd.PersistentFlags().Int("limit", 0, "maximum runs (0 = use default)")

	historyListCmd.Flags().Bool("json", false, "output runs as JSON")
	historyShowCmd.Flags().Bool("json", false, "output the run as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "write to this file instead of stdout")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
