package llm

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/casefile/internal/config"
)

type blockingLLM struct {
	deadline bool
}

func (b *blockingLLM) Generate(ctx context.Context, prompt string) (string, error) {
	_, b.deadline = ctx.Deadline()
	<-ctx.Done()
	return "", ctx.Err()
}

type echoLLM struct{}

func (echoLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return prompt, nil
}

func TestWithTimeout_CancelsSlowCall(t *testing.T) {
	inner := &blockingLLM{}
	client := WithTimeout(inner, 20*time.Millisecond)

	_, err := client.Generate(context.Background(), "hello")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, inner.deadline)
}

func TestWithTimeout_ZeroIsPassthrough(t *testing.T) {
	inner := echoLLM{}
	assert.Equal(t, LLMClient(inner), WithTimeout(inner, 0))

	out, err := WithTimeout(inner, time.Second).Generate(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "ping", out)
}

func TestOllamaBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:11434/v1", OllamaBaseURL(""))
	assert.Equal(t, "http://gpu:11434/v1", OllamaBaseURL("http://gpu:11434/"))
	assert.Equal(t, "http://gpu:11434/v1", OllamaBaseURL("http://gpu:11434/v1"))
}

func TestNewClient(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	for _, provider := range []string{"openai", "OLLAMA", "claude"} {
		c, err := NewClient(ctx, config.LLMConfig{Provider: provider, Model: "m", TimeoutSeconds: 5}, logger)
		require.NoError(t, err, provider)
		assert.IsType(t, &timeoutClient{}, c, provider)
	}

	_, err := NewClient(ctx, config.LLMConfig{Provider: "parrot"}, logger)
	assert.ErrorContains(t, err, "unsupported llm provider")
}
