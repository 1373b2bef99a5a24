package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrMissingSceneAnalysis indicates the scene-analysis JSON file is absent.
var ErrMissingSceneAnalysis = errors.New("scene analysis file not found")

// Scene is one timestamped scene record produced by the external video
// pipeline. The personalization core consumes these only to serialize a
// plain-text script; it does not depend on any richer structure.
type Scene struct {
	ID          int     `json:"id"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Duration    float64 `json:"duration"`
	Timestamp   string  `json:"timestamp"`
	Screenshot  string  `json:"screenshot,omitempty"`
	Description string  `json:"description,omitempty"`
	Dialogue    string  `json:"dialogue,omitempty"`
}

// SceneAnalysis is the structured record the video pipeline saves.
type SceneAnalysis struct {
	Video       string  `json:"video"`
	TotalScenes int     `json:"total_scenes"`
	Scenes      []Scene `json:"scenes"`
}

// FormatTimestamp converts seconds to an M:SS display string.
func FormatTimestamp(seconds float64) string {
	mins := int(seconds) / 60
	secs := int(seconds) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// ScenesToScript serializes scene records into the plain-text script format:
// a header line per scene, optional Visual and Dialogue lines, and a blank
// separator line.
func ScenesToScript(scenes []Scene) string {
	var lines []string

	for _, scene := range scenes {
		screenshot := scene.Screenshot
		if screenshot == "" {
			screenshot = "N/A"
		}
		lines = append(lines, fmt.Sprintf("[SCENE %d | %s | %s]", scene.ID, scene.Timestamp, screenshot))

		if scene.Description != "" {
			lines = append(lines, fmt.Sprintf("Visual: %s", scene.Description))
		}
		if scene.Dialogue != "" {
			lines = append(lines, fmt.Sprintf("Dialogue: %s", scene.Dialogue))
		}

		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// WriteScript serializes scenes and writes the script to path.
func WriteScript(scenes []Scene, path string) error {
	if err := os.WriteFile(path, []byte(ScenesToScript(scenes)), 0o644); err != nil {
		return fmt.Errorf("failed to write script: %w", err)
	}
	return nil
}

// LoadScenes reads a scene-analysis JSON record from path.
func LoadScenes(path string) (*SceneAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSceneAnalysis, path)
		}
		return nil, fmt.Errorf("failed to read scene analysis: %w", err)
	}

	var analysis SceneAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("malformed scene analysis: %w", err)
	}

	return &analysis, nil
}
