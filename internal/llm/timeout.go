package llm

import (
	"context"
	"time"
)

type timeoutClient struct {
	next    LLMClient
	timeout time.Duration
}

// WithTimeout bounds every Generate call on next. A non-positive timeout
// returns next unchanged.
func WithTimeout(next LLMClient, timeout time.Duration) LLMClient {
	if timeout <= 0 {
		return next
	}
	return &timeoutClient{next: next, timeout: timeout}
}

func (c *timeoutClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.next.Generate(ctx, prompt)
}
