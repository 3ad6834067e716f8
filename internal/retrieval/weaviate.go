package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/agenthands/casefile/internal/config"
)

const (
	DefaultClass      = "Passage"
	defaultVectorizer = "text2vec-transformers"
	batchSize         = 100
)

// WeaviateRetriever searches and stores passages in one Weaviate class.
type WeaviateRetriever struct {
	client *weaviate.Client
	class  string
	logger *slog.Logger
}

func NewWeaviateRetriever(cfg config.WeaviateConfig, logger *slog.Logger) (*WeaviateRetriever, error) {
	wcfg := weaviate.Config{Host: cfg.URL, Scheme: "http"}
	switch {
	case strings.HasPrefix(cfg.URL, "https://"):
		wcfg.Scheme = "https"
		wcfg.Host = strings.TrimPrefix(cfg.URL, "https://")
	case strings.HasPrefix(cfg.URL, "http://"):
		wcfg.Host = strings.TrimPrefix(cfg.URL, "http://")
	}

	client, err := weaviate.NewClient(wcfg)
	if err != nil {
		return nil, fmt.Errorf("create weaviate client: %w", err)
	}

	class := cfg.Class
	if class == "" {
		class = DefaultClass
	}
	return &WeaviateRetriever{
		client: client,
		class:  class,
		logger: logger.With("component", "retrieval", "class", class),
	}, nil
}

// Open returns a WeaviateRetriever when a URL is configured and reachable,
// and Nop otherwise.
func Open(ctx context.Context, cfg config.WeaviateConfig, logger *slog.Logger) Retriever {
	if cfg.URL == "" {
		return Nop{}
	}
	r, err := NewWeaviateRetriever(cfg, logger)
	if err != nil {
		logger.Warn("passage retrieval disabled", "error", err)
		return Nop{}
	}
	ready, err := r.client.Misc().ReadyChecker().Do(ctx)
	if err != nil || !ready {
		logger.Warn("passage retrieval disabled, weaviate not ready", "url", cfg.URL, "error", err)
		return Nop{}
	}
	return r
}

func (r *WeaviateRetriever) Search(ctx context.Context, query string, k int) ([]Passage, error) {
	if k <= 0 {
		return nil, nil
	}
	nearText := r.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	result, err := r.client.GraphQL().Get().
		WithClassName(r.class).
		WithFields(
			graphql.Field{Name: "content"},
			graphql.Field{Name: "source"},
			graphql.Field{Name: "_additional { id }"},
		).
		WithNearText(nearText).
		WithLimit(k).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("passage search: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("passage search: %s", result.Errors[0].Message)
	}
	return parsePassages(result, r.class), nil
}

func parsePassages(result *models.GraphQLResponse, class string) []Passage {
	if result == nil {
		return nil
	}
	get, ok := result.Data["Get"].(map[string]any)
	if !ok {
		return nil
	}
	objects, ok := get[class].([]any)
	if !ok {
		return nil
	}

	passages := make([]Passage, 0, len(objects))
	for _, obj := range objects {
		m, ok := obj.(map[string]any)
		if !ok {
			continue
		}
		p := Passage{}
		p.Content, _ = m["content"].(string)
		p.Source, _ = m["source"].(string)
		if add, ok := m["_additional"].(map[string]any); ok {
			p.ID, _ = add["id"].(string)
		}
		if p.Content == "" {
			continue
		}
		passages = append(passages, p)
	}
	return passages
}

// EnsureSchema creates the passage class when it does not exist yet.
func (r *WeaviateRetriever) EnsureSchema(ctx context.Context) error {
	if _, err := r.client.Schema().ClassGetter().WithClassName(r.class).Do(ctx); err == nil {
		return nil
	}
	class := &models.Class{
		Class:       r.class,
		Description: "Chunks of the detective fiction corpus",
		Vectorizer:  defaultVectorizer,
		Properties: []*models.Property{
			{Name: "content", DataType: []string{"text"}},
			{Name: "source", DataType: []string{"text"}},
		},
	}
	if err := r.client.Schema().ClassCreator().WithClass(class).Do(ctx); err != nil {
		return fmt.Errorf("create class %s: %w", r.class, err)
	}
	r.logger.Info("created passage class")
	return nil
}

// Put batch-imports passages. Objects keep their passage ID so importing the
// same corpus twice overwrites instead of duplicating.
func (r *WeaviateRetriever) Put(ctx context.Context, passages []Passage) (int, error) {
	stored := 0
	for start := 0; start < len(passages); start += batchSize {
		end := min(start+batchSize, len(passages))

		objects := make([]*models.Object, 0, end-start)
		for _, p := range passages[start:end] {
			objects = append(objects, &models.Object{
				Class: r.class,
				ID:    strfmt.UUID(p.ID),
				Properties: map[string]any{
					"content": p.Content,
					"source":  p.Source,
				},
			})
		}

		result, err := r.client.Batch().ObjectsBatcher().WithObjects(objects...).Do(ctx)
		if err != nil {
			return stored, fmt.Errorf("batch import: %w", err)
		}
		for _, obj := range result {
			if obj.Result != nil && obj.Result.Errors == nil {
				stored++
			}
		}
		r.logger.Debug("imported batch", "count", len(objects), "stored", stored)
	}
	return stored, nil
}
