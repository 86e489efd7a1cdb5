package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hyperjump/kotae/internal/models"
)

func TestWriteAnswer_JSON(t *testing.T) {
	response := &models.AnswerResponse{
		Answer: "The deadline is Friday [1].",
		Contexts: []models.Citation{
			{Source: "/data/syllabus.md", Title: "syllabus.md", Score: 0.91},
		},
		Meta: models.Meta{K: 4, Provider: "azure", GeneratedAt: "2025-06-01T12:00:00Z"},
	}
	var buf bytes.Buffer
	err := WriteAnswer(&buf, response, OutputJSON)
	if err != nil {
		t.Fatalf("WriteAnswer(json): %v", err)
	}
	var decoded models.AnswerResponse
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Answer != response.Answer {
		t.Errorf("decoded answer = %q, want %q", decoded.Answer, response.Answer)
	}
	if len(decoded.Contexts) != 1 || decoded.Contexts[0].Title != "syllabus.md" {
		t.Errorf("decoded contexts: want one citation for syllabus.md, got %+v", decoded.Contexts)
	}
	if decoded.Meta.Provider != "azure" || decoded.Meta.K != 4 {
		t.Errorf("decoded meta = %+v, want provider=azure k=4", decoded.Meta)
	}
}

func TestWriteAnswer_text(t *testing.T) {
	response := &models.AnswerResponse{
		Answer: "Assignments are due on Friday [1].",
		Contexts: []models.Citation{
			{Source: "/data/syllabus.md", Title: "syllabus.md", Score: 0.91},
			{Source: "/data/grading.md", Title: "grading.md", Score: 0.64},
		},
		Meta: models.Meta{K: 4, Provider: "azure", GeneratedAt: "2025-06-01T12:00:00Z"},
	}
	var buf bytes.Buffer
	if err := WriteAnswer(&buf, response, OutputText); err != nil {
		t.Fatalf("WriteAnswer(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{
		"Assignments are due on Friday [1].",
		"--- Sources ---",
		"[1] syllabus.md (score 0.9100)",
		"[2] grading.md (score 0.6400)",
		"provider: azure | k: 4 | generated: 2025-06-01T12:00:00Z",
	} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteAnswer_text_noSources(t *testing.T) {
	response := &models.AnswerResponse{
		Answer:   "I couldn’t find a reliable answer in the provided documents.",
		Contexts: []models.Citation{},
		Meta:     models.Meta{K: 4, Provider: "azure", GeneratedAt: "2025-06-01T12:00:00Z"},
	}
	var buf bytes.Buffer
	if err := WriteAnswer(&buf, response, OutputText); err != nil {
		t.Fatalf("WriteAnswer(text): %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Sources") {
		t.Errorf("refusal with no contexts should not print a sources block:\n%s", out)
	}
	if !strings.Contains(out, "reliable answer") {
		t.Errorf("expected refusal text in output:\n%s", out)
	}
}

func TestWriteSearchResults_JSON(t *testing.T) {
	response := &models.SearchResponse{
		Query:     "test query",
		QueryTime: 42,
		Total:     1,
		Results: []models.SearchResult{
			{ChunkID: "doc-1::0", Source: "/data/doc-1.txt", Title: "doc-1.txt", Score: 0.9},
		},
	}
	var buf bytes.Buffer
	err := WriteSearchResults(&buf, response, OutputJSON)
	if err != nil {
		t.Fatalf("WriteSearchResults(json): %v", err)
	}
	var decoded models.SearchResponse
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Query != response.Query || decoded.QueryTime != response.QueryTime {
		t.Errorf("decoded query=%q query_time=%d, want query=%q query_time=%d",
			decoded.Query, decoded.QueryTime, response.Query, response.QueryTime)
	}
	if len(decoded.Results) != 1 || decoded.Results[0].ChunkID != "doc-1::0" {
		t.Errorf("decoded results: want one result with chunk id doc-1::0, got %+v", decoded.Results)
	}
}

func TestWriteSearchResults_text(t *testing.T) {
	response := &models.SearchResponse{
		Query:     "foo",
		QueryTime: 10,
		Total:     1,
		Results: []models.SearchResult{
			{ChunkID: "id1::0", Source: "/data/id1.txt", Title: "Title One", Score: 0.5, Text: "Short content"},
		},
	}
	var buf bytes.Buffer
	err := WriteSearchResults(&buf, response, OutputText)
	if err != nil {
		t.Fatalf("WriteSearchResults(text): %v", err)
	}
	out := buf.String()
	for _, sub := range []string{"Found 1 results", "10ms", "Rank: 1", "Chunk: id1::0", "Title One", "Short content"} {
		if !strings.Contains(out, sub) {
			t.Errorf("text output missing %q:\n%s", sub, out)
		}
	}
}

func TestWriteSearchResults_text_noText(t *testing.T) {
	response := &models.SearchResponse{
		Query:     "bar",
		QueryTime: 5,
		Total:     1,
		Results: []models.SearchResult{
			{ChunkID: "id2::3", Source: "/data/id2.txt", Title: "id2.txt", Score: 0.8},
		},
	}
	var buf bytes.Buffer
	err := WriteSearchResults(&buf, response, OutputText)
	if err != nil {
		t.Fatalf("WriteSearchResults(text): %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Chunk: id2::3") {
		t.Errorf("expected chunk id in output:\n%s", out)
	}
	if strings.Contains(out, "Short content") {
		t.Errorf("result without text should not print a body:\n%s", out)
	}
}

func TestWriteSearchResults_unknownFormatTreatedAsText(t *testing.T) {
	response := &models.SearchResponse{Query: "x", QueryTime: 0}
	var buf bytes.Buffer
	err := WriteSearchResults(&buf, response, OutputFormat("unknown"))
	if err != nil {
		t.Fatalf("WriteSearchResults(unknown): %v", err)
	}
	if !strings.Contains(buf.String(), "Found") {
		t.Errorf("unknown format should fall back to text; got %q", buf.String())
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"json", OutputJSON, false},
		{"yaml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseOutputFormat(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseOutputFormat(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
