package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agenthands/casefile/internal/graph"
)

var mapCase string

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Print a stored case as a Graphviz digraph",
	Long:  "Reads every relationship of a stored case and writes it in DOT format, e.g. casefile map --case cli | dot -Tpng > case.png",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store := graph.Open(ctx, cfg.Memgraph, mapCase, logger)
		defer store.Close(ctx)
		if !store.IsActive() {
			return fmt.Errorf("%w: cannot reach %s", graph.ErrInactive, cfg.Memgraph.URI)
		}

		edges, err := store.Edges(ctx)
		if err != nil {
			return err
		}
		return graph.WriteDOT(cmd.OutOrStdout(), mapCase, edges)
	},
}

func init() {
	mapCmd.Flags().StringVar(&mapCase, "case", "cli", "case id to export")
}
