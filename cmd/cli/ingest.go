package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/casefile/internal/retrieval"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Load detective stories into the passage store",
	Long:  "Splits every .txt file in dir into overlapping passages and imports them into Weaviate.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Weaviate.URL == "" {
			return errors.New("weaviate url is not configured (set WEAVIATE_URL or [weaviate] url)")
		}
		r, err := retrieval.NewWeaviateRetriever(cfg.Weaviate, logger)
		if err != nil {
			return err
		}
		n, err := retrieval.Ingest(cmd.Context(), r, args[0], logger)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ingested %d passages\n", n)
		return nil
	},
}
