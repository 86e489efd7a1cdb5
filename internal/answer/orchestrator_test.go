package answer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/kotae/internal/generate"
	"github.com/hyperjump/kotae/internal/models"
)

type stubSearcher struct {
	contexts []models.Context
	err      error
	calls    int
	lastK    int
}

func (s *stubSearcher) Search(ctx context.Context, query string, k int) ([]models.Context, error) {
	s.calls++
	s.lastK = k
	return s.contexts, s.err
}

type recordingGenerator struct {
	name   string
	reply  string
	err    error
	delay  time.Duration
	calls  int
	prompt string
}

func (g *recordingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	g.prompt = prompt
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return g.reply, g.err
}

func (g *recordingGenerator) Name() string { return g.name }
func (g *recordingGenerator) Close() error { return nil }

func contextList(scores ...float64) []models.Context {
	out := make([]models.Context, len(scores))
	for i, score := range scores {
		out[i] = models.Context{
			Chunk: &models.Chunk{
				DocID:  "doc",
				Source: "/data/syllabus.txt",
				ID:     models.ChunkID("doc", i),
				Text:   fmt.Sprintf("chunk text %d", i),
			},
			Score: score,
		}
	}
	return out
}

func newTestOrchestrator(contexts []models.Context, gen *recordingGenerator, opts ...Option) (*Orchestrator, *stubSearcher) {
	searcher := &stubSearcher{contexts: contexts}
	registry := generate.NewRegistry(gen.name)
	registry.Register(gen)
	return NewOrchestrator(searcher, registry, opts...), searcher
}

func TestAnswer_GeneratesWhenConfident(t *testing.T) {
	gen := &recordingGenerator{name: "stub", reply: "Assignments are due Friday [1]."}
	o, _ := newTestOrchestrator(contextList(0.9, 0.7), gen)

	rsp, err := o.Answer(context.Background(), &models.AnswerRequest{Query: "When are assignments due?"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("generator called %d times, want 1", gen.calls)
	}
	if rsp.Answer != "Assignments are due Friday [1]." {
		t.Errorf("answer = %q", rsp.Answer)
	}
	if !strings.Contains(gen.prompt, "Question: When are assignments due?") {
		t.Errorf("prompt missing question:\n%s", gen.prompt)
	}
	if !strings.Contains(gen.prompt, "[1] chunk text 0") || !strings.Contains(gen.prompt, "[2] chunk text 1") {
		t.Errorf("prompt missing numbered contexts:\n%s", gen.prompt)
	}
	if len(rsp.Contexts) != 2 {
		t.Fatalf("got %d contexts, want 2", len(rsp.Contexts))
	}
	if rsp.Contexts[0].Title != "syllabus.txt" || rsp.Contexts[0].Score != 0.9 {
		t.Errorf("first citation = %+v", rsp.Contexts[0])
	}
	if rsp.Meta.K != models.DefaultK {
		t.Errorf("meta.k = %d, want %d", rsp.Meta.K, models.DefaultK)
	}
	if rsp.Meta.Provider != "stub" {
		t.Errorf("meta.provider = %q", rsp.Meta.Provider)
	}
	if _, err := time.Parse(time.RFC3339, rsp.Meta.GeneratedAt); err != nil {
		t.Errorf("generated_at %q is not RFC 3339: %v", rsp.Meta.GeneratedAt, err)
	}
	if !strings.HasSuffix(rsp.Meta.GeneratedAt, "Z") {
		t.Errorf("generated_at %q is not UTC", rsp.Meta.GeneratedAt)
	}
}

func TestAnswer_RefusesOnWeakEvidence(t *testing.T) {
	gen := &recordingGenerator{name: "stub", reply: "should never appear"}
	o, _ := newTestOrchestrator(contextList(0.54, 0.3), gen)

	rsp, err := o.Answer(context.Background(), &models.AnswerRequest{Query: "anything"})
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times on the refusal path", gen.calls)
	}
	if rsp.Answer != Refusal {
		t.Errorf("answer = %q, want the refusal text", rsp.Answer)
	}
	if len(rsp.Contexts) != 2 {
		t.Errorf("refusal dropped contexts: got %d", len(rsp.Contexts))
	}
	if rsp.Meta.K != models.DefaultK || rsp.Meta.Provider != "stub" {
		t.Errorf("refusal meta = %+v", rsp.Meta)
	}
}

func TestAnswer_RefusesOnEmptyStore(t *testing.T) {
	gen := &recordingGenerator{name: "stub"}
	o, _ := newTestOrchestrator(nil, gen)

	rsp, err := o.Answer(context.Background(), &models.AnswerRequest{Query: "anything", K: 4})
	if err != nil {
		t.Fatal(err)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times on empty store", gen.calls)
	}
	if rsp.Answer != Refusal {
		t.Errorf("answer = %q", rsp.Answer)
	}
	js, err := json.Marshal(rsp)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(js), `"contexts":[]`) {
		t.Errorf("empty contexts must serialize as [], got %s", js)
	}
}

func TestAnswer_ContextsNeverCarryText(t *testing.T) {
	gen := &recordingGenerator{name: "stub", reply: "grounded answer"}
	o, _ := newTestOrchestrator(contextList(0.9), gen)

	rsp, err := o.Answer(context.Background(), &models.AnswerRequest{Query: "q"})
	if err != nil {
		t.Fatal(err)
	}
	js, err := json.Marshal(rsp)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(js), "chunk text") || strings.Contains(string(js), `"text"`) {
		t.Errorf("response leaks chunk text: %s", js)
	}
}

func TestAnswer_EmptyQueryRejected(t *testing.T) {
	gen := &recordingGenerator{name: "stub"}
	o, searcher := newTestOrchestrator(contextList(0.9), gen)

	_, err := o.Answer(context.Background(), &models.AnswerRequest{Query: "   "})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if kind := models.KindOf(err); kind != models.ErrValidation {
		t.Errorf("KindOf = %q, want %q", kind, models.ErrValidation)
	}
	if searcher.calls != 0 {
		t.Errorf("searcher called %d times for an invalid request", searcher.calls)
	}
}

func TestAnswer_UnknownProviderFallsBackButEchoes(t *testing.T) {
	gen := &recordingGenerator{name: "stub", reply: "answer"}
	o, _ := newTestOrchestrator(contextList(0.9), gen)

	rsp, err := o.Answer(context.Background(), &models.AnswerRequest{Query: "q", Provider: "mystery"})
	if err != nil {
		t.Fatal(err)
	}
	if gen.calls != 1 {
		t.Errorf("default generator called %d times, want 1", gen.calls)
	}
	if rsp.Meta.Provider != "mystery" {
		t.Errorf("meta.provider = %q, want the requested name", rsp.Meta.Provider)
	}
}

func TestAnswer_KDefaultsAndCaps(t *testing.T) {
	gen := &recordingGenerator{name: "stub", reply: "answer"}
	o, searcher := newTestOrchestrator(contextList(0.9), gen)

	rsp, err := o.Answer(context.Background(), &models.AnswerRequest{Query: "q"})
	if err != nil {
		t.Fatal(err)
	}
	if searcher.lastK != models.DefaultK || rsp.Meta.K != models.DefaultK {
		t.Errorf("k = %d/%d, want default %d", searcher.lastK, rsp.Meta.K, models.DefaultK)
	}

	if _, err := o.Answer(context.Background(), &models.AnswerRequest{Query: "q", K: 99}); err != nil {
		t.Fatal(err)
	}
	if searcher.lastK != models.MaxK {
		t.Errorf("k = %d, want cap %d", searcher.lastK, models.MaxK)
	}
}

func TestAnswer_SearcherFailurePropagates(t *testing.T) {
	gen := &recordingGenerator{name: "stub"}
	registry := generate.NewRegistry("stub")
	registry.Register(gen)
	searcher := &stubSearcher{err: models.Errorf(models.ErrUpstream, "embed backend down")}
	o := NewOrchestrator(searcher, registry)

	_, err := o.Answer(context.Background(), &models.AnswerRequest{Query: "q"})
	if err == nil {
		t.Fatal("expected searcher error")
	}
	if kind := models.KindOf(err); kind != models.ErrUpstream {
		t.Errorf("KindOf = %q, want %q", kind, models.ErrUpstream)
	}
	if gen.calls != 0 {
		t.Errorf("generator called despite retrieval failure")
	}
}

func TestAnswer_GenerationFailureIsUpstream(t *testing.T) {
	gen := &recordingGenerator{name: "stub", err: errors.New("backend exploded")}
	o, _ := newTestOrchestrator(contextList(0.9), gen)

	_, err := o.Answer(context.Background(), &models.AnswerRequest{Query: "q"})
	if err == nil {
		t.Fatal("expected generation error")
	}
	if kind := models.KindOf(err); kind != models.ErrUpstream {
		t.Errorf("KindOf = %q, want %q", kind, models.ErrUpstream)
	}
}

func TestAnswer_GenerationTimeoutIsTimeout(t *testing.T) {
	gen := &recordingGenerator{name: "stub", reply: "late", delay: 200 * time.Millisecond}
	o, _ := newTestOrchestrator(contextList(0.9), gen, WithTimeout(10*time.Millisecond))

	_, err := o.Answer(context.Background(), &models.AnswerRequest{Query: "q"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if kind := models.KindOf(err); kind != models.ErrTimeout {
		t.Errorf("KindOf = %q, want %q", kind, models.ErrTimeout)
	}
}

func TestAnswer_SanitizesGeneratorOutput(t *testing.T) {
	gen := &recordingGenerator{name: "azure", reply: "<think>working through it</think>The answer is Friday."}
	o, _ := newTestOrchestrator(contextList(0.9), gen)

	rsp, err := o.Answer(context.Background(), &models.AnswerRequest{Query: "q"})
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Answer != "The answer is Friday." {
		t.Errorf("answer = %q, reasoning block not stripped", rsp.Answer)
	}
}

func TestAnswer_CustomSanitizerByProvider(t *testing.T) {
	gen := &recordingGenerator{name: "quirky", reply: "ANSWER: Friday"}
	sanitizers := generate.NewSanitizers()
	sanitizers.Register("quirky", func(s string) string {
		return strings.TrimPrefix(s, "ANSWER: ")
	})
	o, _ := newTestOrchestrator(contextList(0.9), gen, WithSanitizers(sanitizers))

	rsp, err := o.Answer(context.Background(), &models.AnswerRequest{Query: "q", Provider: "quirky"})
	if err != nil {
		t.Fatal(err)
	}
	if rsp.Answer != "Friday" {
		t.Errorf("answer = %q, provider sanitizer not applied", rsp.Answer)
	}
}

func TestSearch_IncludeTextToggle(t *testing.T) {
	gen := &recordingGenerator{name: "stub"}
	o, _ := newTestOrchestrator(contextList(0.8, 0.6), gen)

	hidden, err := o.Search(context.Background(), "q", 2, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range hidden.Results {
		if r.Text != "" {
			t.Errorf("result %q carries text without include_text", r.ChunkID)
		}
	}

	shown, err := o.Search(context.Background(), "q", 2, true)
	if err != nil {
		t.Fatal(err)
	}
	if shown.Results[0].Text != "chunk text 0" {
		t.Errorf("result text = %q", shown.Results[0].Text)
	}
}

func TestSearch_Envelope(t *testing.T) {
	gen := &recordingGenerator{name: "stub"}
	o, searcher := newTestOrchestrator(contextList(0.8, 0.6), gen)

	rsp, err := o.Search(context.Background(), "deadlines", 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if searcher.lastK != models.DefaultK {
		t.Errorf("k defaulted to %d, want %d", searcher.lastK, models.DefaultK)
	}
	if rsp.Query != "deadlines" || rsp.Total != 2 {
		t.Errorf("envelope = %+v", rsp)
	}
	if rsp.Results[0].ChunkID != "doc::0" || rsp.Results[0].Title != "syllabus.txt" {
		t.Errorf("first result = %+v", rsp.Results[0])
	}
	if rsp.QueryTime < 0 {
		t.Errorf("query_time_ms = %d", rsp.QueryTime)
	}
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	gen := &recordingGenerator{name: "stub"}
	o, _ := newTestOrchestrator(nil, gen)

	_, err := o.Search(context.Background(), "", 4, false)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if kind := models.KindOf(err); kind != models.ErrValidation {
		t.Errorf("KindOf = %q, want %q", kind, models.ErrValidation)
	}
}

func TestBuildPrompt(t *testing.T) {
	contexts := contextList(0.9, 0.8)
	got := BuildPrompt("When are assignments due?", contexts)
	want := `You are a helpful assistant. Answer ONLY using the context. If the answer is not in the context, say you don't know.

Question: When are assignments due?

Context:
[1] chunk text 0

[2] chunk text 1

Requirements:
- Be concise.
- Cite sources like [1], [2] that correspond to the context indices above.`
	if got != want {
		t.Errorf("prompt mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}
