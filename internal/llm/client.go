package llm

import (
	"context"
)

// LLMClient is the language-generation boundary: prompt in, freeform text
// out. Callers must treat the text as untrusted.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
