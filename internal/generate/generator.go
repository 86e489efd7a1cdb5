// Package generate produces grounded answers from prompts via hosted
// language model backends. Backends register under a provider name;
// requests resolve against the registry and fall back to the default
// provider when they name an unknown one.
package generate

import (
	"context"
	"fmt"
	"sort"
)

// generationTemperature keeps answers close to the retrieved context.
const generationTemperature = 0.2

// Generator produces completion text for a prompt.
type Generator interface {
	// Generate returns the model's answer text. The context deadline
	// bounds the call.
	Generate(ctx context.Context, prompt string) (string, error)
	// Name returns the provider key this generator registers under.
	Name() string
	Close() error
}

// Registry holds the configured generators keyed by provider name.
type Registry struct {
	defaultName string
	generators  map[string]Generator
}

// NewRegistry creates a registry whose unknown-provider fallback is
// defaultName.
func NewRegistry(defaultName string) *Registry {
	return &Registry{
		defaultName: defaultName,
		generators:  make(map[string]Generator),
	}
}

// Register adds g under its provider name, replacing any previous
// registration.
func (r *Registry) Register(g Generator) {
	r.generators[g.Name()] = g
}

// Resolve returns the generator for the named provider. An empty or
// unknown name resolves to the default provider, so a request can
// always be served as long as the default backend is configured.
func (r *Registry) Resolve(name string) (Generator, error) {
	if g, ok := r.generators[name]; ok {
		return g, nil
	}
	if g, ok := r.generators[r.defaultName]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("generate: no generator for provider %q and default %q is not configured", name, r.defaultName)
}

// Default returns the fallback provider name.
func (r *Registry) Default() string {
	return r.defaultName
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes every registered generator, returning the first error.
func (r *Registry) Close() error {
	var first error
	for _, g := range r.generators {
		if err := g.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
