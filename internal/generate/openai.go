package generate

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the chat model used when none is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIGenerator answers prompts through the OpenAI chat completions
// API, or any compatible endpoint when a base URL override is given.
type OpenAIGenerator struct {
	client *openai.Client
	model  string
	name   string
}

// NewOpenAIGenerator returns a generator backed by the OpenAI API.
// baseURL may be empty for the public endpoint.
func NewOpenAIGenerator(apiKey, baseURL, model string) *OpenAIGenerator {
	if model == "" {
		model = DefaultOpenAIModel
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		name:   "openai",
	}
}

// Generate sends the prompt as a single user message and returns the
// first choice's content.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: generationTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	rsp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(rsp.Choices) == 0 || rsp.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion")
	}
	return rsp.Choices[0].Message.Content, nil
}

// Name returns the provider key.
func (g *OpenAIGenerator) Name() string {
	return g.name
}

// Close is a no-op; the client holds no connections between calls.
func (g *OpenAIGenerator) Close() error {
	return nil
}
