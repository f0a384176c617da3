// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dialogue-engine/internal/dataset"
	"github.com/pdiddy/dialogue-engine/internal/index"
	"github.com/pdiddy/dialogue-engine/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the example index (store, retrieve, export)",
	Long: `Index manages a local SQLite index of teacher-generated examples.
Use subcommands to ingest a split, query examples with full-text search,
or export the index.`,
}

// --- store subcommand ---

var indexStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest teacher examples for a split into the index",
	Long: `Store derives every example for the configured split through the
selected teacher variant and writes them into the SQLite index with FTS5
over example text and knowledge. Previous rows for the same split and
teacher are replaced.`,
	RunE: runIndexStore,
}

func runIndexStore(cmd *cobra.Command, args []string) error {
	cfg := datasetConfig(cmd)
	data, err := dataset.Load(cfg)
	if err != nil {
		return err
	}

	t, err := buildTeacher(cmd, data)
	if err != nil {
		return err
	}
	teacherID, _ := cmd.Flags().GetString("teacher")

	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), t, teacherID, cfg.Split, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d example(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var indexRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the example index with full-text search and filters",
	Long: `Retrieve searches the example index using FTS5 full-text search over
example text and knowledge, structured filters (split, teacher, topic),
or a combination of both.`,
	RunE: runIndexRetrieve,
}

func runIndexRetrieve(cmd *cobra.Command, args []string) error {
	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --filter-split, --filter-teacher, or --topic")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []index.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-6s  %-10s  %-8s  %-20s  %-40s\n",
		"Rank", "Split", "Teacher", "Ep/Turn", "Topic", "Text")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, r := range results {
		text := r.Text
		if len(text) > 40 {
			text = text[:37] + "..."
		}
		topic := r.ChosenTopic
		if len(topic) > 20 {
			topic = topic[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-6s  %-10s  %3d/%-4d  %-20s  %-40s\n",
			i+1, r.Split, r.Teacher, r.EpisodeIdx, r.EntryIdx, topic, text)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var indexExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the example index to YAML or JSON",
	Long: `Export writes the full example index (or a filtered subset) to
export.yaml or export.json in the index directory. Supports the same
filter flags as retrieve for partial exports.`,
	RunE: runIndexExport,
}

func runIndexExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func indexConfig(cmd *cobra.Command) types.IndexConfig {
	indexDir, _ := cmd.Flags().GetString("index-dir")
	if indexDir == "" {
		indexDir = "index"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.IndexConfig{
		IndexDir:   indexDir,
		MaxResults: maxResults,
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) index.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	split, _ := cmd.Flags().GetString("filter-split")
	teacherID, _ := cmd.Flags().GetString("filter-teacher")
	topic, _ := cmd.Flags().GetString("topic")
	limit, _ := cmd.Flags().GetInt("limit")

	return index.QueryOptions{
		Query:      queryText,
		Split:      types.Split(split),
		Teacher:    teacherID,
		Topic:      topic,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	indexCmd.PersistentFlags().String("index-dir", "index", "directory holding the SQLite database and exports")
	indexCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// Store flags.
	indexStoreCmd.Flags().String("teacher", "knowledge", "teacher variant: transcript, knowledge, or generator")
	indexStoreCmd.Flags().String("label-type", "response", "label source: response or chosen_sent")
	indexStoreCmd.Flags().Bool("include-knowledge", true, "include the knowledge available to the wizard")
	indexStoreCmd.Flags().Bool("include-checked-sentence", false, "include the wizard's checked sentence")
	indexStoreCmd.Flags().Bool("include-knowledge-separator", false, "include the __knowledge__ token between title and passage")
	indexStoreCmd.Flags().String("chosen-topic-delimiter", "\n", "delimiter used when including the chosen topic")
	indexStoreCmd.Flags().Int("num-topics", 5, "number of topic choices offered in interactive mode")
	indexStoreCmd.Flags().Bool("only-checked-knowledge", false, "generator: provide only the checked sentence as knowledge")
	indexStoreCmd.Flags().Float64("ignorant-dropout", 0.0, "generator: probability of erasing all knowledge")
	indexStoreCmd.Flags().Bool("prepend-gold-knowledge", false, "generator: prepend the checked sentence to the input text")
	indexStoreCmd.Flags().String("gold-knowledge-delimiter", "\n", "delimiter between prepended knowledge and text")
	indexStoreCmd.Flags().Int64("seed", 0, "dropout random seed (0 = time-based)")

	// Retrieve flags.
	indexRetrieveCmd.Flags().String("query", "", "full-text search query")
	indexRetrieveCmd.Flags().String("filter-split", "", "filter by split: train, valid, or test")
	indexRetrieveCmd.Flags().String("filter-teacher", "", "filter by teacher variant")
	indexRetrieveCmd.Flags().String("topic", "", "filter by chosen topic")
	indexRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	indexRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	indexExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	indexExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	indexExportCmd.Flags().String("filter-split", "", "filter by split for partial export")
	indexExportCmd.Flags().String("filter-teacher", "", "filter by teacher variant for partial export")
	indexExportCmd.Flags().String("topic", "", "filter by chosen topic for partial export")
	indexExportCmd.Flags().Int("limit", 0, "maximum examples to export (0 = all)")

	// Wire subcommands.
	indexCmd.AddCommand(indexStoreCmd)
	indexCmd.AddCommand(indexRetrieveCmd)
	indexCmd.AddCommand(indexExportCmd)

	rootCmd.AddCommand(indexCmd)
}
