package retrieval

import "context"

// Passage is one chunk of the reference corpus.
type Passage struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Retriever returns up to k passages relevant to query, best first.
// Retrieval is decoration: callers treat errors as "no passages".
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]Passage, error)
}

// Nop is the retriever used when no passage store is configured.
type Nop struct{}

func (Nop) Search(ctx context.Context, query string, k int) ([]Passage, error) {
	return nil, nil
}
