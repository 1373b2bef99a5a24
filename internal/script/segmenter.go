package script

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/Yates-Labs/recast/internal/llm"
)

// Segmenter splits a script into rhetorical sections using a structure
// inference step. It never fails: any structuring problem degrades to a
// single full_script section so the pipeline cannot stall here.
type Segmenter struct {
	llm llm.LLM
}

// NewSegmenter creates a segmenter over the given LLM.
func NewSegmenter(client llm.LLM) (*Segmenter, error) {
	if client == nil {
		return nil, fmt.Errorf("llm cannot be nil")
	}
	return &Segmenter{llm: client}, nil
}

// Structure segments a script into an ordered list of rhetorical sections.
// On any inference or parse failure it returns exactly one full_script
// section containing the trimmed input.
func (s *Segmenter) Structure(ctx context.Context, scriptText string) []Section {
	trimmed := strings.TrimSpace(scriptText)

	raw, err := s.llm.Generate(ctx, buildStructurePrompt(trimmed))
	if err != nil {
		log.Printf("[Segmenter] structure inference failed, falling back to full script: %v", err)
		return fallbackSections(trimmed)
	}

	sections, err := parseStructureResponse(raw)
	if err != nil {
		log.Printf("[Segmenter] could not parse structure response, falling back to full script: %v", err)
		return fallbackSections(trimmed)
	}

	log.Printf("[Segmenter] identified %d sections", len(sections))
	return sections
}

func fallbackSections(trimmed string) []Section {
	return []Section{
		{
			Type:        SectionFullScript,
			Description: "entire script (structure analysis unavailable)",
			Content:     trimmed,
		},
	}
}

// parseStructureResponse owns the JSON boundary with the structuring step.
// The payload is never trusted: section types are lowercased and trimmed,
// blank-content sections are dropped, and an empty list is an error so the
// caller falls back.
func parseStructureResponse(raw string) ([]Section, error) {
	var payload struct {
		Sections []struct {
			Type        string `json:"type"`
			Description string `json:"description"`
			Content     string `json:"content"`
		} `json:"sections"`
	}

	if err := json.Unmarshal([]byte(llm.StripCodeFence(raw)), &payload); err != nil {
		return nil, fmt.Errorf("malformed structure response: %w", err)
	}

	sections := make([]Section, 0, len(payload.Sections))
	for _, raw := range payload.Sections {
		content := strings.TrimSpace(raw.Content)
		if content == "" {
			continue
		}
		sections = append(sections, Section{
			Type:        SectionType(strings.ToLower(strings.TrimSpace(raw.Type))),
			Description: strings.TrimSpace(raw.Description),
			Content:     content,
		})
	}

	if len(sections) == 0 {
		return nil, fmt.Errorf("structure response contains no sections")
	}

	return sections, nil
}

func buildStructurePrompt(scriptText string) string {
	var b strings.Builder

	b.WriteString("You are analyzing the structure of a short-form video script.\n\n")
	b.WriteString("Script:\n")
	b.WriteString(scriptText)
	b.WriteString("\n\n")
	b.WriteString("Split the script into its rhetorical sections, in the order they appear. ")
	b.WriteString("Each section must have a type drawn from exactly this vocabulary:\n")
	b.WriteString("[hook, backstory, breaking_point, takeaway, cta, transition]\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Every line of the script belongs to exactly one section; do not drop or reorder text.\n")
	b.WriteString("- description is one short sentence on what the section is doing rhetorically.\n")
	b.WriteString("- content is the verbatim script text of the section.\n\n")
	b.WriteString("Return a single JSON object ONLY, like:\n")
	b.WriteString(`{"sections": [{"type": "hook", "description": "grabs attention with a bold claim", "content": "..."}]}`)
	b.WriteString("\n")

	return b.String()
}
