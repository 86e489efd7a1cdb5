package generate

import "strings"

// NewAzureGenerator returns a generator backed by an Azure OpenAI
// resource through its OpenAI-compatible v1 surface. endpoint is the
// resource endpoint (https://NAME.openai.azure.com); deployment is the
// chat deployment name, which stands in for the model.
func NewAzureGenerator(endpoint, apiKey, deployment string) *OpenAIGenerator {
	baseURL := strings.TrimRight(endpoint, "/") + "/openai/v1"
	g := NewOpenAIGenerator(apiKey, baseURL, deployment)
	g.name = "azure"
	return g
}
