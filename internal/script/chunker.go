package script

import (
	"strings"
	"unicode/utf8"
)

// Default chunking bounds for rewriting. Sections at or under the threshold
// are rewritten whole; longer ones are split on line boundaries so each
// chunk stays within the rewriter's effective context.
const (
	DefaultSectionThreshold = 300
	DefaultChunkSize        = 200
	DefaultChunkOverlap     = 20
)

// ChunkConfig bounds the sub-splitting of long sections.
type ChunkConfig struct {
	// SectionThreshold is the content length (runes) above which a section
	// is split into multiple chunks
	SectionThreshold int

	// ChunkSize is the target chunk length in runes
	ChunkSize int

	// ChunkOverlap is the approximate overlap carried between chunks, in
	// runes, taken as whole trailing lines
	ChunkOverlap int
}

// DefaultChunkConfig returns the default chunking bounds.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		SectionThreshold: DefaultSectionThreshold,
		ChunkSize:        DefaultChunkSize,
		ChunkOverlap:     DefaultChunkOverlap,
	}
}

// ChunkSection splits section content into rewrite-sized chunks. Content at
// or under the threshold is returned as a single chunk. Longer content is
// split on line boundaries into ~ChunkSize-rune chunks, carrying up to
// ~ChunkOverlap trailing runes of the previous chunk forward so context
// survives the split. Blank content yields no chunks.
func ChunkSection(content string, cfg ChunkConfig) []string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}

	if cfg.SectionThreshold <= 0 {
		cfg.SectionThreshold = DefaultSectionThreshold
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = 0
	}

	if utf8.RuneCountInString(trimmed) <= cfg.SectionThreshold {
		return []string{trimmed}
	}

	var lines []string
	for _, line := range strings.Split(trimmed, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			lines = append(lines, l)
		}
	}

	var chunks []string
	var current []string
	currentLen := 0
	grown := false // whether current holds lines beyond the carried overlap

	flush := func() {
		if len(current) == 0 || !grown {
			return
		}
		chunks = append(chunks, strings.Join(current, "\n"))

		// Carry trailing lines totaling at most ChunkOverlap runes into
		// the next chunk.
		var carry []string
		carryLen := 0
		for i := len(current) - 1; i >= 0; i-- {
			lineLen := utf8.RuneCountInString(current[i])
			if carryLen+lineLen > cfg.ChunkOverlap {
				break
			}
			carry = append([]string{current[i]}, carry...)
			carryLen += lineLen
		}
		current = carry
		currentLen = carryLen
		grown = false
	}

	for _, line := range lines {
		lineLen := utf8.RuneCountInString(line)
		if currentLen > 0 && currentLen+lineLen > cfg.ChunkSize {
			flush()
		}
		current = append(current, line)
		currentLen += lineLen
		grown = true

		// A single line longer than ChunkSize becomes its own chunk.
		if currentLen >= cfg.ChunkSize {
			flush()
		}
	}

	flush()

	return chunks
}
