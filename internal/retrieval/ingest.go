package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	ChunkSize    = 1000
	ChunkOverlap = 200
)

// PassageWriter is the write side of a passage store.
type PassageWriter interface {
	EnsureSchema(ctx context.Context) error
	Put(ctx context.Context, passages []Passage) (int, error)
}

// passageNamespace keys the deterministic passage IDs.
var passageNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("casefile/passages"))

// PassageID is stable for a given source file and chunk index.
func PassageID(source string, index int) string {
	return uuid.NewSHA1(passageNamespace, []byte(fmt.Sprintf("%s#%d", source, index))).String()
}

// Chunk splits text from source into overlapping passages.
func Chunk(source, text string) ([]Passage, error) {
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(ChunkSize),
		textsplitter.WithChunkOverlap(ChunkOverlap),
	)
	chunks, err := splitter.SplitText(text)
	if err != nil {
		return nil, fmt.Errorf("split %s: %w", source, err)
	}

	passages := make([]Passage, 0, len(chunks))
	for _, c := range chunks {
		if strings.TrimSpace(c) == "" {
			continue
		}
		passages = append(passages, Passage{
			ID:      PassageID(source, len(passages)),
			Content: c,
			Source:  source,
		})
	}
	return passages, nil
}

// Ingest chunks every .txt file in dir and writes the passages to w. It
// returns the number of passages stored.
func Ingest(ctx context.Context, w PassageWriter, dir string, logger *slog.Logger) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", dir, err)
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no .txt files in %s", dir)
	}
	sort.Strings(files)

	if err := w.EnsureSchema(ctx); err != nil {
		return 0, err
	}

	total := 0
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return total, fmt.Errorf("read %s: %w", path, err)
		}
		source := filepath.Base(path)
		passages, err := Chunk(source, string(data))
		if err != nil {
			return total, err
		}
		n, err := w.Put(ctx, passages)
		total += n
		if err != nil {
			return total, fmt.Errorf("store %s: %w", source, err)
		}
		logger.Info("ingested file", "source", source, "passages", n)
	}
	return total, nil
}
