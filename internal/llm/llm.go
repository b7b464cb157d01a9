package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts generative text providers. Implementations issue exactly
// one model request per call; retry policy belongs to the caller.
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ProviderError reports a failed generative model call.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is a stub implementation used when no provider key is set.
type PlaceholderClient struct{}

// GenerateContent returns ErrNotConfigured.
func (PlaceholderClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", &ProviderError{Provider: "placeholder", Err: ErrNotConfigured}
}

var _ Client = PlaceholderClient{}
