package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/spigell/lead-screener/internal/ai"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	defaultTemperature     = 0.3
	defaultMaxOutputTokens = 1500
)

// Generator wraps the OpenAI chat completions API behind the same
// interface as the Gemini generator, so the provider stays a
// configuration choice.
type Generator struct {
	client          openai.Client
	modelName       string
	temperature     float64
	maxOutputTokens int
}

// NewGenerator creates a Generator backed by the OpenAI API.
func NewGenerator(apiKey, model string, temperature float64, maxOutputTokens int) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = string(openai.ChatModelGPT4oMini)
	}

	if temperature <= 0 {
		temperature = defaultTemperature
	}

	if maxOutputTokens <= 0 {
		maxOutputTokens = defaultMaxOutputTokens
	}

	return &Generator{
		client:          openai.NewClient(option.WithAPIKey(apiKey)),
		modelName:       model,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
	}, nil
}

// GenerateContent sends the prompt as a single user message and returns
// the first choice's content.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil {
		return "", &ai.ProviderError{Provider: "openai", Err: errors.New("openai generator is not initialized")}
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature:         openai.Float(g.temperature),
		MaxCompletionTokens: openai.Int(int64(g.maxOutputTokens)),
	})
	if err != nil {
		return "", &ai.ProviderError{Provider: "openai", Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &ai.ProviderError{Provider: "openai", Err: errors.New("openai api returned no choices")}
	}

	output := strings.TrimSpace(resp.Choices[0].Message.Content)
	if output == "" {
		return "", &ai.ProviderError{Provider: "openai", Err: errors.New("openai api returned empty response")}
	}

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
