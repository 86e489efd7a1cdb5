package generate

import (
	"regexp"
	"strings"
)

// Sanitizer rewrites raw model output before it enters the answer
// envelope.
type Sanitizer func(string) string

var thinkBlocks = regexp.MustCompile(`(?s)<think>.*?</think>\s*`)

// StripReasoning removes the <think> blocks some models emit ahead of
// their answer, along with surrounding whitespace.
func StripReasoning(s string) string {
	return strings.TrimSpace(thinkBlocks.ReplaceAllString(s, ""))
}

// Passthrough trims surrounding whitespace and leaves the body of the
// text untouched.
func Passthrough(s string) string {
	return strings.TrimSpace(s)
}

// Sanitizers maps provider names to output sanitizers. Providers whose
// models wrap answers in extra markup register a cleanup here without
// touching the answer pipeline.
type Sanitizers struct {
	byProvider map[string]Sanitizer
	fallback   Sanitizer
}

// NewSanitizers returns the default set: the OpenAI-compatible
// providers strip reasoning blocks, and every other provider falls back
// to Passthrough.
func NewSanitizers() *Sanitizers {
	s := &Sanitizers{
		byProvider: make(map[string]Sanitizer),
		fallback:   Passthrough,
	}
	s.Register("azure", StripReasoning)
	s.Register("openai", StripReasoning)
	return s
}

// Register installs fn for the named provider, replacing any previous
// registration.
func (s *Sanitizers) Register(provider string, fn Sanitizer) {
	s.byProvider[provider] = fn
}

// For returns the sanitizer registered for provider, or the fallback.
func (s *Sanitizers) For(provider string) Sanitizer {
	if fn, ok := s.byProvider[provider]; ok && fn != nil {
		return fn
	}
	return s.fallback
}
