package token

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// TiktokenCodec wraps one of the tiktoken byte-pair encodings.
type TiktokenCodec struct {
	name string
	enc  *tiktoken.Tiktoken
}

// NewTiktoken returns a codec for the named encoding. The vocabulary is
// fetched on first use and cached under TIKTOKEN_CACHE_DIR.
func NewTiktoken(name string) (*TiktokenCodec, error) {
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("load encoding %q: %w", name, err)
	}
	return &TiktokenCodec{name: name, enc: enc}, nil
}

// Encode converts text into token ids.
func (c *TiktokenCodec) Encode(text string) []int {
	return c.enc.Encode(text, nil, nil)
}

// Decode reconstructs text from token ids.
func (c *TiktokenCodec) Decode(ids []int) string {
	return c.enc.Decode(ids)
}

// Name returns the encoding name.
func (c *TiktokenCodec) Name() string { return c.name }
