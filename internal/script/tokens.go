package script

import (
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates token counts for chunk budget reporting. It uses
// the tiktoken encoding of the generation model when available and falls
// back to a rune-based approximation when the encoding cannot be loaded
// (e.g., offline test runs).
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTokenCounter creates a counter for the given model. The fallback is
// used silently if the model's encoding is unknown or unavailable.
func NewTokenCounter(model string) *TokenCounter {
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return &TokenCounter{}
	}
	return &TokenCounter{encoding: encoding}
}

// Count returns the estimated token count for text.
func (t *TokenCounter) Count(text string) int {
	if t == nil || t.encoding == nil {
		// Rough approximation: ~4 runes per token for English text.
		n := utf8.RuneCountInString(text)
		if n == 0 {
			return 0
		}
		return n/4 + 1
	}
	return len(t.encoding.Encode(text, nil, nil))
}
