package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/lead-screener/internal/ai"

	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-2.5-flash"

	// Classification wants consistent tier assignment, not creative prose.
	defaultTemperature = 0.3

	defaultMaxOutputTokens = 1500
)

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	client          *genai.Client
	modelName       string
	temperature     float32
	maxOutputTokens int32
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
// Temperature and maxOutputTokens fall back to the built-in defaults when
// non-positive.
func NewGenerator(ctx context.Context, apiKey, model string, temperature float64, maxOutputTokens int) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if temperature <= 0 {
		temperature = defaultTemperature
	}

	if maxOutputTokens <= 0 {
		maxOutputTokens = defaultMaxOutputTokens
	}

	return &Generator{
		client:          client,
		modelName:       model,
		temperature:     float32(temperature),
		maxOutputTokens: int32(maxOutputTokens),
	}, nil
}

// GenerateContent sends the prompt to Gemini and returns the concatenated
// textual response.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", &ai.ProviderError{Provider: "gemini", Err: errors.New("gemini generator is not initialized")}
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	temperature := g.temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: g.maxOutputTokens,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", &ai.ProviderError{Provider: "gemini", Err: err}
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", &ai.ProviderError{Provider: "gemini", Err: errors.New("gemini api returned empty response")}
	}

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
