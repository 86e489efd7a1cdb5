// Package token converts text to model token ids and back. Chunking
// operates on these ids so window boundaries line up with what the
// embedding model actually sees.
package token

// DefaultEncoding is the byte-pair encoding used when none is configured.
// cl100k_base matches the OpenAI embedding model family.
const DefaultEncoding = "cl100k_base"

// Codec converts between text and token ids.
type Codec interface {
	// Encode converts text into token ids.
	Encode(text string) []int
	// Decode reconstructs text from token ids.
	Decode(ids []int) string
	// Name identifies the encoding, e.g. "cl100k_base".
	Name() string
}
