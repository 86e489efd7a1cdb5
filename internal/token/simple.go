package token

import (
	"strings"
	"sync"
)

// SimpleCodec is a whitespace word codec with ids assigned on first
// sight. It needs no vocabulary files, which makes it the codec of
// choice for tests and offline runs. Decoding joins words with single
// spaces, so original whitespace is not preserved.
type SimpleCodec struct {
	mu    sync.Mutex
	ids   map[string]int
	words []string
}

// NewSimple returns an empty word codec.
func NewSimple() *SimpleCodec {
	return &SimpleCodec{ids: make(map[string]int)}
}

// Encode splits text on whitespace and assigns each distinct word a
// stable id.
func (c *SimpleCodec) Encode(text string) []int {
	fields := strings.Fields(text)
	out := make([]int, 0, len(fields))

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range fields {
		id, ok := c.ids[w]
		if !ok {
			id = len(c.words)
			c.ids[w] = id
			c.words = append(c.words, w)
		}
		out = append(out, id)
	}
	return out
}

// Decode joins the words behind ids with spaces. Unknown ids are skipped.
func (c *SimpleCodec) Decode(ids []int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	words := make([]string, 0, len(ids))
	for _, id := range ids {
		if id >= 0 && id < len(c.words) {
			words = append(words, c.words[id])
		}
	}
	return strings.Join(words, " ")
}

// Name identifies the codec.
func (c *SimpleCodec) Name() string { return "simple" }
