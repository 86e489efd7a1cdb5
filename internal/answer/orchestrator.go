// Package answer orchestrates retrieval-grounded question answering:
// retrieve, guard on evidence strength, generate, sanitize, envelope.
package answer

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/kotae/internal/generate"
	"github.com/hyperjump/kotae/internal/models"
)

const (
	// ConfidenceThreshold is the minimum top-context similarity for
	// attempting generation. Below it the orchestrator refuses rather
	// than letting the model guess.
	ConfidenceThreshold = 0.55

	// Refusal is the fixed answer text returned on weak evidence. Its
	// wording is part of the response contract.
	Refusal = "I couldn’t find a reliable answer in the provided documents."

	// DefaultGenerationTimeout bounds a single generation call.
	DefaultGenerationTimeout = 30 * time.Second
)

// Searcher supplies scored contexts for a query, best first.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]models.Context, error)
}

// Orchestrator answers questions against the ingested corpus. It is
// safe for concurrent use.
type Orchestrator struct {
	searcher   Searcher
	generators *generate.Registry
	sanitizers *generate.Sanitizers
	timeout    time.Duration
	logger     *zap.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets a logger for per-request debug events.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithTimeout overrides the generation deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithSanitizers replaces the output sanitizer set.
func WithSanitizers(s *generate.Sanitizers) Option {
	return func(o *Orchestrator) { o.sanitizers = s }
}

// NewOrchestrator wires a searcher to the configured generators.
func NewOrchestrator(searcher Searcher, generators *generate.Registry, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		searcher:   searcher,
		generators: generators,
		sanitizers: generate.NewSanitizers(),
		timeout:    DefaultGenerationTimeout,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Providers lists the registered generation providers, sorted.
func (o *Orchestrator) Providers() []string {
	return o.generators.Names()
}

// Answer retrieves evidence for the request and generates a grounded
// answer, or the fixed refusal when the evidence is too weak. The
// returned envelope has the same shape on both paths; refusal is a
// successful outcome, not an error.
func (o *Orchestrator) Answer(ctx context.Context, req *models.AnswerRequest) (*models.AnswerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	contexts, err := o.searcher.Search(ctx, req.Query, req.K)
	if err != nil {
		return nil, err
	}

	// The envelope echoes the requested provider even when resolution
	// falls back to the default backend.
	providerName := req.Provider
	if providerName == "" {
		providerName = o.generators.Default()
	}

	if len(contexts) == 0 || contexts[0].Score < ConfidenceThreshold {
		topScore := 0.0
		if len(contexts) > 0 {
			topScore = contexts[0].Score
		}
		o.logger.Debug("answer refused on weak evidence",
			zap.Int("contexts", len(contexts)),
			zap.Float64("top_score", topScore))
		return envelope(Refusal, contexts, req.K, providerName), nil
	}

	gen, err := o.generators.Resolve(req.Provider)
	if err != nil {
		return nil, models.WrapError(models.ErrInternal, "resolve provider", err)
	}

	prompt := BuildPrompt(req.Query, contexts)
	genCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	raw, err := gen.Generate(genCtx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, models.WrapError(models.ErrTimeout, "generation timed out", err)
		}
		return nil, models.WrapError(models.ErrUpstream, "generation failed", err)
	}
	o.logger.Debug("answer generated",
		zap.String("provider", gen.Name()),
		zap.Duration("took", time.Since(start)))

	text := o.sanitizers.For(gen.Name())(raw)
	return envelope(text, contexts, req.K, providerName), nil
}

// Search runs retrieval without generation. Chunk text is included in
// the results only when includeText is set.
func (o *Orchestrator) Search(ctx context.Context, query string, k int, includeText bool) (*models.SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.Errorf(models.ErrValidation, "query cannot be empty")
	}
	if k <= 0 {
		k = models.DefaultK
	}
	if k > models.MaxK {
		k = models.MaxK
	}

	start := time.Now()
	contexts, err := o.searcher.Search(ctx, query, k)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, len(contexts))
	for i, c := range contexts {
		results[i] = models.SearchResult{
			ChunkID: c.Chunk.ID,
			Source:  c.Chunk.Source,
			Title:   c.Title(),
			Score:   c.Score,
		}
		if includeText {
			results[i].Text = c.Chunk.Text
		}
	}
	return &models.SearchResponse{
		Query:     query,
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
	}, nil
}

// envelope builds the stable answer response. Context text never
// appears in it, only source, title, and score.
func envelope(text string, contexts []models.Context, k int, provider string) *models.AnswerResponse {
	citations := make([]models.Citation, len(contexts))
	for i, c := range contexts {
		citations[i] = c.Citation()
	}
	return &models.AnswerResponse{
		Answer:   text,
		Contexts: citations,
		Meta: models.Meta{
			K:           k,
			Provider:    provider,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
}
