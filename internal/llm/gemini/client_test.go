package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/chistym17/jobgenie/internal/llm"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(context.Background(), "  ", "gemini-2.0-flash"); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestGenerateContentUninitialized(t *testing.T) {
	var c *Client
	_, err := c.GenerateContent(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error from nil client")
	}
	var provErr *llm.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %T: %v", err, err)
	}
	if provErr.Provider != "gemini" {
		t.Fatalf("unexpected provider tag %q", provErr.Provider)
	}
}
