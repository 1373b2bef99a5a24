package script

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "0:00"},
		{5.4, "0:05"},
		{59.9, "0:59"},
		{60, "1:00"},
		{125, "2:05"},
		{3605, "60:05"},
	}

	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds); got != tt.expected {
			t.Errorf("FormatTimestamp(%v): expected %q, got %q", tt.seconds, tt.expected, got)
		}
	}
}

func TestScenesToScript_Format(t *testing.T) {
	scenes := []Scene{
		{
			ID:          1,
			Timestamp:   "0:00-0:07",
			Screenshot:  "screenshots/scene_001.jpg",
			Description: "Person talking to camera in a bright kitchen.",
			Dialogue:    "I never thought I'd build an app.",
		},
		{
			ID:        2,
			Timestamp: "0:07-0:15",
			Dialogue:  "But here we are.",
		},
	}

	script := ScenesToScript(scenes)

	if !strings.Contains(script, "[SCENE 1 | 0:00-0:07 | screenshots/scene_001.jpg]") {
		t.Error("missing scene 1 header")
	}
	if !strings.Contains(script, "Visual: Person talking to camera in a bright kitchen.") {
		t.Error("missing visual line")
	}
	if !strings.Contains(script, "Dialogue: I never thought I'd build an app.") {
		t.Error("missing dialogue line")
	}
	// Scene 2 has no screenshot or description.
	if !strings.Contains(script, "[SCENE 2 | 0:07-0:15 | N/A]") {
		t.Error("missing N/A placeholder for absent screenshot")
	}
	if strings.Contains(script, "Visual: \n") {
		t.Error("empty description must not emit a Visual line")
	}
	// Blank separator line between scenes.
	if !strings.Contains(script, "\n\n[SCENE 2") {
		t.Error("scenes must be separated by a blank line")
	}
}

func TestWriteScript_And_LoadScenes(t *testing.T) {
	dir := t.TempDir()

	analysis := SceneAnalysis{
		Video:       "videos/demo.mp4",
		TotalScenes: 1,
		Scenes: []Scene{
			{ID: 1, Start: 0, End: 7.5, Duration: 7.5, Timestamp: "0:00-0:07", Dialogue: "Hello."},
		},
	}

	jsonPath := filepath.Join(dir, "video_analysis.json")
	data, err := json.Marshal(analysis)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	loaded, err := LoadScenes(jsonPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Video != analysis.Video || len(loaded.Scenes) != 1 {
		t.Errorf("round-trip mismatch: %+v", loaded)
	}
	if loaded.Scenes[0].Dialogue != "Hello." {
		t.Errorf("dialogue lost: %+v", loaded.Scenes[0])
	}

	scriptPath := filepath.Join(dir, "script.txt")
	if err := WriteScript(loaded.Scenes, scriptPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(scriptPath)
	if err != nil {
		t.Fatalf("failed to read script: %v", err)
	}
	if !strings.Contains(string(content), "Dialogue: Hello.") {
		t.Errorf("written script missing dialogue: %q", string(content))
	}
}

func TestLoadScenes_Missing(t *testing.T) {
	_, err := LoadScenes(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, ErrMissingSceneAnalysis) {
		t.Errorf("Expected ErrMissingSceneAnalysis, got %v", err)
	}
}

func TestLoadScenes_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	if _, err := LoadScenes(path); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}
