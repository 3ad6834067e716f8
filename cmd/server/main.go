package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/agenthands/casefile/internal/config"
	"github.com/agenthands/casefile/internal/core/generator"
	"github.com/agenthands/casefile/internal/core/narrator"
	"github.com/agenthands/casefile/internal/graph"
	"github.com/agenthands/casefile/internal/llm"
	"github.com/agenthands/casefile/internal/retrieval"
	"github.com/agenthands/casefile/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	envErr := godotenv.Load()

	cfg, err := config.FromEnvironment(os.LookupEnv)
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg.Log, os.Stderr)
	if envErr != nil {
		logger.Info("no .env file found, using environment and defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := llm.NewClient(ctx, cfg.LLM, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	store := graph.Open(ctx, cfg.Memgraph, "", logger)
	defer store.Close(context.Background())
	if err := store.BuildIndices(ctx); err != nil {
		logger.Warn("index build failed", "error", err)
	}

	retriever := retrieval.Open(ctx, cfg.Weaviate, logger)

	gen := generator.NewGenerator(client,
		generator.WithRetriever(retriever),
		generator.WithThemes(cfg.Game.Themes),
		generator.WithPrompts(cfg.Prompts),
		generator.WithLogger(logger),
	)
	nar := narrator.NewNarrator(client,
		narrator.WithRetriever(retriever),
		narrator.WithPersona(cfg.Prompts.Persona),
		narrator.WithLogger(logger),
	)
	srv := server.NewServer(gen, nar, server.GraphStores(store),
		server.WithTimeLimit(cfg.Game.TimeLimit()),
		server.WithLogger(logger),
	)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "port", cfg.Server.Port, "graph_active", store.IsActive())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
