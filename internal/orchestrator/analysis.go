package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Yates-Labs/recast/internal/llm"
	"github.com/Yates-Labs/recast/internal/script"
)

// Analysis is the machine-readable record of a segmentation-only run.
type Analysis struct {
	OriginalFile  string           `json:"original_file"`
	AnalyzedAt    time.Time        `json:"analyzed_at"`
	TotalSections int              `json:"total_sections"`
	Sections      []script.Section `json:"sections"`

	// Paths of the persisted artifacts, set by Analyze.
	JSONPath string `json:"-"`
	TextPath string `json:"-"`
}

// Analyzer runs only the segmentation stage and persists the section
// breakdown. It needs no vector store or embedder, so it can be
// constructed with just an LLM.
type Analyzer struct {
	segmenter          *script.Segmenter
	callTimeoutSeconds int
}

// NewAnalyzer creates an analysis-only segmenter wrapper.
func NewAnalyzer(client llm.LLM, callTimeoutSeconds int) (*Analyzer, error) {
	segmenter, err := script.NewSegmenter(client)
	if err != nil {
		return nil, err
	}
	return &Analyzer{segmenter: segmenter, callTimeoutSeconds: callTimeoutSeconds}, nil
}

// Analyze segments the script at inputPath and writes two artifacts into
// outputDir: a JSON record and a human-readable rendering, both with
// timestamp-qualified names so prior analyses are never overwritten.
// Classification, retrieval, and rewriting are never invoked.
//
// A blank input script returns (nil, nil) without writing anything.
func (a *Analyzer) Analyze(ctx context.Context, inputPath, outputDir string) (*Analysis, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, inputPath)
		}
		return nil, fmt.Errorf("failed to read input script: %w", err)
	}

	scriptText := strings.TrimSpace(string(data))
	if scriptText == "" {
		log.Printf("[Analyzer] %s is empty, nothing to analyze", inputPath)
		return nil, nil
	}

	callCtx := ctx
	if a.callTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, time.Duration(a.callTimeoutSeconds)*time.Second)
		defer cancel()
	}

	sections := a.segmenter.Structure(callCtx, scriptText)

	analysis := &Analysis{
		OriginalFile:  inputPath,
		AnalyzedAt:    time.Now(),
		TotalSections: len(sections),
		Sections:      sections,
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create analysis directory: %w", err)
	}

	// Nanosecond precision so back-to-back analyses never overwrite each other.
	stamp := analysis.AnalyzedAt.Format("20060102-150405.000000000")
	analysis.JSONPath = filepath.Join(outputDir, fmt.Sprintf("analysis_%s.json", stamp))
	analysis.TextPath = filepath.Join(outputDir, fmt.Sprintf("analysis_%s.txt", stamp))

	encoded, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis: %w", err)
	}
	if err := os.WriteFile(analysis.JSONPath, encoded, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write analysis JSON: %w", err)
	}

	if err := os.WriteFile(analysis.TextPath, []byte(renderAnalysisText(analysis)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write analysis text: %w", err)
	}

	log.Printf("[Analyzer] Section breakdown saved to %s and %s", analysis.JSONPath, analysis.TextPath)
	return analysis, nil
}

// renderAnalysisText produces the human-readable rendering of an analysis.
func renderAnalysisText(analysis *Analysis) string {
	var b strings.Builder

	b.WriteString("SCRIPT STRUCTURE ANALYSIS\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	b.WriteString(fmt.Sprintf("Original file: %s\n", analysis.OriginalFile))
	b.WriteString(fmt.Sprintf("Analyzed at:   %s\n", analysis.AnalyzedAt.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("Sections:      %d\n\n", analysis.TotalSections))

	for i, section := range analysis.Sections {
		b.WriteString(fmt.Sprintf("[%d] %s\n", i+1, strings.ToUpper(string(section.Type))))
		if section.Description != "" {
			b.WriteString(fmt.Sprintf("    %s\n", section.Description))
		}
		b.WriteString(strings.Repeat("-", 60) + "\n")
		b.WriteString(section.Content + "\n\n")
	}

	return b.String()
}
