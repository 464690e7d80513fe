package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ringquest/internal/game"
	"ringquest/internal/version"
)

// Report describes where a session ended. Headless runs write one so
// scripted playthroughs can be checked without looking at frames.
type Report struct {
	// Metadata
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Region    string    `json:"region"`
	Script    string    `json:"script,omitempty"`

	// Game state
	State       string      `json:"state"`
	Frames      uint64      `json:"frames"`
	Transitions uint64      `json:"transitions"`
	Player      *PlayerData `json:"player,omitempty"`
	Ring        string      `json:"ring,omitempty"`

	// Display and audio
	Palette    []uint8 `json:"palette"`
	Sprites    []uint8 `json:"sprites"`
	Track      string  `json:"track,omitempty"`
	AverageFPS float64 `json:"average_fps"`
}

// PlayerData is the player position in a report
type PlayerData struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Facing string `json:"facing"`
}

// Report captures the current session
func (app *Application) Report() *Report {
	report := &Report{
		Version:     version.GetVersion(),
		Timestamp:   time.Now(),
		Region:      app.region.String(),
		Script:      app.options.Script,
		State:       app.game.State().String(),
		Frames:      app.game.Frames(),
		Transitions: app.game.Transitions(),
		AverageFPS:  app.stats.FPS(),
	}

	if level, ok := app.game.State().(*game.Level); ok {
		report.Player = &PlayerData{
			X:      level.Player.X,
			Y:      level.Player.Y,
			Facing: level.Player.Facing.String(),
		}
		report.Ring = level.Ring.String()
	}

	palette := app.display.Palette()
	report.Palette = palette[:]
	sprites := app.game.Sprites()
	report.Sprites = sprites[:]

	if app.audio != nil {
		if track, ok := app.audio.CurrentTrack(); ok {
			report.Track = track.String()
		}
	}

	return report
}

// SaveReport writes the report as indented JSON
func SaveReport(report *Report, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// LoadReport reads a report written by SaveReport
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	report := &Report{}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return report, nil
}
