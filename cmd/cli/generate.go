package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/casefile/internal/core/generator"
	"github.com/agenthands/casefile/internal/graph"
	"github.com/agenthands/casefile/internal/llm"
	"github.com/agenthands/casefile/internal/retrieval"
)

var (
	loadCase bool
	caseID   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a case and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client, err := llm.NewClient(ctx, cfg.LLM, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize LLM client: %w", err)
		}

		gen := generator.NewGenerator(client,
			generator.WithRetriever(retrieval.Open(ctx, cfg.Weaviate, logger)),
			generator.WithThemes(cfg.Game.Themes),
			generator.WithPrompts(cfg.Prompts),
			generator.WithLogger(logger),
		)
		c, report, err := gen.Assemble(ctx)
		if err != nil {
			return err
		}
		if !report.Empty() {
			logger.Info("case repaired", "report", report)
		}

		if loadCase {
			store := graph.Open(ctx, cfg.Memgraph, caseID, logger)
			defer store.Close(ctx)
			if err := store.BuildIndices(ctx); err != nil {
				logger.Warn("index build failed", "error", err)
			}
			if err := store.LoadCase(ctx, c); err != nil {
				return fmt.Errorf("load case %q: %w", caseID, err)
			}
			logger.Info("case loaded", "case_id", caseID)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	},
}

func init() {
	generateCmd.Flags().BoolVar(&loadCase, "load", false, "also load the case into the graph")
	generateCmd.Flags().StringVar(&caseID, "case", "cli", "case id to load under")
}
