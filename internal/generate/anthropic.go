package generate

import (
	"context"
	"errors"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is the Claude model used when none is configured.
const DefaultAnthropicModel = "claude-3-5-sonnet-latest"

// anthropicMaxTokens bounds the answer length per message.
const anthropicMaxTokens = 1024

// AnthropicGenerator answers prompts through the Anthropic messages API.
type AnthropicGenerator struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicGenerator returns a generator backed by the Anthropic API.
func NewAnthropicGenerator(apiKey, model string) *AnthropicGenerator {
	if model == "" {
		model = DefaultAnthropicModel
	}
	client := anthropic.NewClient(anthropicopt.WithAPIKey(apiKey))
	return &AnthropicGenerator{client: &client, model: model}
}

// Generate sends the prompt as a single user message and concatenates
// the text blocks of the reply.
func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(generationTemperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	rsp, err := g.client.Messages.New(ctx, req)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, content := range rsp.Content {
		if text, ok := content.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}
	if b.Len() == 0 {
		return "", errors.New("empty completion")
	}
	return b.String(), nil
}

// Name returns the provider key.
func (g *AnthropicGenerator) Name() string {
	return "anthropic"
}

// Close is a no-op; the client holds no connections between calls.
func (g *AnthropicGenerator) Close() error {
	return nil
}
