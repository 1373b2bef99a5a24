package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Yates-Labs/recast/internal/llm"
	"github.com/Yates-Labs/recast/internal/script"
)

func TestAnalyze_WritesArtifacts(t *testing.T) {
	structureLLM := llm.NewMock(`{"sections": [
		{"type": "hook", "description": "bold claim", "content": "I quit my job."},
		{"type": "cta", "description": "asks to follow", "content": "Follow for more."}
	]}`)

	analyzer, err := NewAnalyzer(structureLLM, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dir := t.TempDir()
	input := filepath.Join(dir, "script.txt")
	if err := os.WriteFile(input, []byte("I quit my job.\nFollow for more."), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	outputDir := filepath.Join(dir, "analysis")
	analysis, err := analyzer.Analyze(context.Background(), input, outputDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis == nil {
		t.Fatal("Expected an analysis record")
	}
	if analysis.TotalSections != 2 {
		t.Errorf("Expected 2 sections, got %d", analysis.TotalSections)
	}
	if analysis.Sections[0].Type != script.SectionHook || analysis.Sections[1].Type != script.SectionCTA {
		t.Errorf("Section order or types wrong: %+v", analysis.Sections)
	}

	// JSON artifact round-trips the section breakdown.
	if !strings.HasPrefix(filepath.Base(analysis.JSONPath), "analysis_") {
		t.Errorf("Unexpected JSON artifact name: %s", analysis.JSONPath)
	}
	data, err := os.ReadFile(analysis.JSONPath)
	if err != nil {
		t.Fatalf("JSON artifact not written: %v", err)
	}
	var decoded Analysis
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to decode artifact: %v", err)
	}
	if decoded.OriginalFile != input || decoded.TotalSections != 2 {
		t.Errorf("Decoded analysis mismatch: %+v", decoded)
	}
	for i, section := range decoded.Sections {
		if section.Type != analysis.Sections[i].Type || section.Content != analysis.Sections[i].Content {
			t.Errorf("Section %d lost in round-trip: %+v", i, section)
		}
	}

	// Text artifact is human-readable.
	text, err := os.ReadFile(analysis.TextPath)
	if err != nil {
		t.Fatalf("text artifact not written: %v", err)
	}
	if !strings.Contains(string(text), "SCRIPT STRUCTURE ANALYSIS") {
		t.Error("Text artifact missing header")
	}
	if !strings.Contains(string(text), "[1] HOOK") || !strings.Contains(string(text), "I quit my job.") {
		t.Error("Text artifact missing section rendering")
	}
}

func TestAnalyze_FallbackSingleSection(t *testing.T) {
	analyzer, err := NewAnalyzer(llm.NewMockWithError(errors.New("inference down")), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dir := t.TempDir()
	input := filepath.Join(dir, "script.txt")
	if err := os.WriteFile(input, []byte("The whole script."), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	analysis, err := analyzer.Analyze(context.Background(), input, filepath.Join(dir, "analysis"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.TotalSections != 1 || analysis.Sections[0].Type != script.SectionFullScript {
		t.Errorf("Expected full_script fallback, got %+v", analysis.Sections)
	}
}

func TestAnalyze_NeverOverwritesPriorAnalyses(t *testing.T) {
	analyzer, err := NewAnalyzer(llm.NewMock(`{"sections": [{"type": "hook", "content": "x"}]}`), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dir := t.TempDir()
	input := filepath.Join(dir, "script.txt")
	if err := os.WriteFile(input, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	outputDir := filepath.Join(dir, "analysis")
	first, err := analyzer.Analyze(context.Background(), input, outputDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := analyzer.Analyze(context.Background(), input, outputDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.JSONPath == second.JSONPath || first.TextPath == second.TextPath {
		t.Errorf("Back-to-back analyses must not share artifact names: %s", first.JSONPath)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("failed to list artifacts: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("Expected 4 artifacts (2 runs x JSON+text), got %d", len(entries))
	}
}

func TestAnalyze_MissingInput(t *testing.T) {
	analyzer, _ := NewAnalyzer(llm.NewMock("unused"), 0)

	dir := t.TempDir()
	_, err := analyzer.Analyze(context.Background(), filepath.Join(dir, "absent.txt"), dir)
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("Expected ErrMissingInput, got %v", err)
	}
}

func TestAnalyze_BlankInput(t *testing.T) {
	analyzer, _ := NewAnalyzer(llm.NewMock("unused"), 0)

	dir := t.TempDir()
	input := filepath.Join(dir, "script.txt")
	if err := os.WriteFile(input, []byte("  \n  "), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	outputDir := filepath.Join(dir, "analysis")
	analysis, err := analyzer.Analyze(context.Background(), input, outputDir)
	if err != nil {
		t.Fatalf("Blank input must be a soft no-op, got error: %v", err)
	}
	if analysis != nil {
		t.Errorf("Expected nil analysis, got %+v", analysis)
	}
	if _, statErr := os.Stat(outputDir); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("No artifacts must be written for a blank script")
	}
}
