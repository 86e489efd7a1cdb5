// Package cli provides CLI output writers for Kotae.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat maps an --output flag value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "", "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteAnswer writes an answer envelope to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteAnswer(w io.Writer, response *models.AnswerResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeAnswerText(w, response)
		return nil
	}
}

// writeAnswerText numbers the sources the same way the answer cites
// them, so [1] in the text lines up with [1] in the list.
func writeAnswerText(w io.Writer, response *models.AnswerResponse) {
	fmt.Fprintf(w, "\n%s\n", response.Answer)
	if len(response.Contexts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "--- Sources ---")
		for i, citation := range response.Contexts {
			fmt.Fprintf(w, "[%d] %s (score %.4f)\n", i+1, citation.Title, citation.Score)
		}
	}
	fmt.Fprintf(w, "\nprovider: %s | k: %d | generated: %s\n",
		response.Meta.Provider, response.Meta.K, response.Meta.GeneratedAt)
}

// WriteSearchResults writes retrieval results to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	default:
		writeSearchResultsText(w, response)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) {
	fmt.Fprintf(w, "\nFound %d results in %dms\n\n", response.Total, response.QueryTime)
	for i, result := range response.Results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Score: %.4f\n", i+1, result.Score)
		fmt.Fprintf(w, "Chunk: %s\n", result.ChunkID)
		if result.Title != "" {
			fmt.Fprintf(w, "Title: %s\n", result.Title)
		}
		if result.Text != "" {
			fmt.Fprintf(w, "\n%s\n", utils.Truncate(result.Text, 200))
		}
		fmt.Fprintln(w)
	}
}
