package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/spigell/lead-screener/internal/ai"
)

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	if _, err := NewGenerator("  ", "", 0, 0); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}

func TestNewGeneratorDefaults(t *testing.T) {
	g, err := NewGenerator("test-key", "", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if g.Model() == "" {
		t.Fatalf("expected a default model")
	}
	if g.temperature != defaultTemperature {
		t.Fatalf("expected default temperature, got %v", g.temperature)
	}
	if g.maxOutputTokens != defaultMaxOutputTokens {
		t.Fatalf("expected default max output tokens, got %v", g.maxOutputTokens)
	}
}

func TestGenerateContentRejectsEmptyPrompt(t *testing.T) {
	g, err := NewGenerator("test-key", "gpt-4o-mini", 0.2, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := g.GenerateContent(context.Background(), "  "); err == nil {
		t.Fatalf("expected error for empty prompt")
	}
}

func TestUninitializedGeneratorReturnsProviderError(t *testing.T) {
	var g *Generator

	_, err := g.GenerateContent(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected error from nil generator")
	}

	var provErr *ai.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected a provider error, got %T", err)
	}
	if provErr.Provider != "openai" {
		t.Fatalf("unexpected provider name: %q", provErr.Provider)
	}
}
