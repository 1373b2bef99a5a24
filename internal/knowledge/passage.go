// Package knowledge provides the personal-fact corpus behind script
// personalization. It splits the corpus into overlapping passages, embeds
// them, and stores the vectors in Milvus for similarity retrieval.
package knowledge

import (
	"fmt"
	"strings"
	"unicode"
)

// Default passage sizing for corpus indexing. The overlap keeps a sentence
// that straddles a split boundary retrievable from both sides.
const (
	DefaultPassageSize    = 400
	DefaultPassageOverlap = 60
)

// Passage is one immutable fragment of the personal corpus. Its identity is
// derived from the rune offset in the source text, so rebuilding the same
// corpus yields the same IDs.
type Passage struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Offset int    `json:"offset"`
}

// SplitPassages splits corpus text into overlapping fixed-size passages.
// Sizes are measured in runes. Boundaries prefer whitespace so words are not
// cut mid-token; blank fragments are dropped.
func SplitPassages(text string, size, overlap int) []Passage {
	if size <= 0 {
		size = DefaultPassageSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultPassageOverlap
		if overlap >= size {
			overlap = size / 4
		}
	}

	runes := []rune(text)
	var passages []Passage

	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			end = len(runes)
		} else {
			// Scan back a short distance for a whitespace boundary.
			limit := end - size/8
			if limit < start+1 {
				limit = start + 1
			}
			for i := end; i > limit; i-- {
				if unicode.IsSpace(runes[i-1]) {
					end = i
					break
				}
			}
		}

		fragment := strings.TrimSpace(string(runes[start:end]))
		if fragment != "" {
			passages = append(passages, Passage{
				ID:     fmt.Sprintf("passage-%d", start),
				Text:   fragment,
				Offset: start,
			})
		}

		if end == len(runes) {
			break
		}

		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return passages
}
