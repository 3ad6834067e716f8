package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agenthands/casefile/internal/config"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "casefile",
	Short: "Murder mystery case tools",
	Long:  `Command line utilities for casefile: corpus ingestion, case generation and graph export.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		var err error
		cfg, err = config.FromEnvironment(os.LookupEnv)
		if err != nil {
			return err
		}
		logger = config.NewLogger(cfg.Log, os.Stderr)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(ingestCmd, generateCmd, mapCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
