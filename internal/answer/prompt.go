package answer

import (
	"fmt"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
)

const promptTemplate = `You are a helpful assistant. Answer ONLY using the context. If the answer is not in the context, say you don't know.

Question: %s

Context:
%s

Requirements:
- Be concise.
- Cite sources like [1], [2] that correspond to the context indices above.`

// BuildPrompt renders the generation prompt. Contexts are numbered
// [1], [2], ... in retrieval order; the numbering is what the model is
// told to cite, so it must match the order of the response contexts.
func BuildPrompt(query string, contexts []models.Context) string {
	var b strings.Builder
	for i, c := range contexts {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%d] %s", i+1, c.Chunk.Text)
	}
	return fmt.Sprintf(promptTemplate, query, b.String())
}
