// Package app wires the game to a graphics backend, audio output and the
// configuration file.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"ringquest/internal/game"
	"ringquest/internal/graphics"
	"ringquest/internal/input"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "RINGQUEST_"

// Config holds all application configuration
type Config struct {
	Window WindowConfig `json:"window" envPrefix:"WINDOW_"`
	Video  VideoConfig  `json:"video" envPrefix:"VIDEO_"`
	Audio  AudioConfig  `json:"audio" envPrefix:"AUDIO_"`
	Input  InputConfig  `json:"input"`
	Game   GameConfig   `json:"game" envPrefix:"GAME_"`
	Debug  DebugConfig  `json:"debug" envPrefix:"DEBUG_"`
	Paths  PathsConfig  `json:"paths" envPrefix:"PATHS_"`

	// Internal state
	configPath string
	loaded     bool
}

// WindowConfig contains window-related configuration
type WindowConfig struct {
	Width      int  `json:"width" env:"WIDTH"`
	Height     int  `json:"height" env:"HEIGHT"`
	Fullscreen bool `json:"fullscreen" env:"FULLSCREEN"`
	Scale      int  `json:"scale" env:"SCALE"` // frame size multiplier when width or height is 0
}

// VideoConfig contains video rendering configuration
type VideoConfig struct {
	Backend    string  `json:"backend" env:"BACKEND"` // "ebitengine", "headless", "terminal"
	VSync      bool    `json:"vsync" env:"VSYNC"`
	Filter     string  `json:"filter" env:"FILTER"` // "nearest", "linear"
	Brightness float64 `json:"brightness" env:"BRIGHTNESS"`
	Contrast   float64 `json:"contrast" env:"CONTRAST"`
	Saturation float64 `json:"saturation" env:"SATURATION"`
}

// AudioConfig contains audio configuration
type AudioConfig struct {
	Enabled    bool    `json:"enabled" env:"ENABLED"`
	SampleRate int     `json:"sample_rate" env:"SAMPLE_RATE"`
	Volume     float64 `json:"volume" env:"VOLUME"`
}

// InputConfig contains the keyboard layout of both controllers
type InputConfig struct {
	Player1Keys KeyMapping `json:"player1_keys"`
	Player2Keys KeyMapping `json:"player2_keys"`
}

// KeyMapping represents keyboard key mappings for one controller. Empty
// entries leave the button unbound.
type KeyMapping struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	A      string `json:"a"`
	B      string `json:"b"`
	Start  string `json:"start"`
	Select string `json:"select"`
}

// GameConfig contains game settings
type GameConfig struct {
	Region string `json:"region" env:"REGION"` // "NTSC", "PAL"
}

// DebugConfig contains debugging and development options
type DebugConfig struct {
	EnableLogging bool   `json:"enable_logging" env:"ENABLE_LOGGING"`
	ShowFPS       bool   `json:"show_fps" env:"SHOW_FPS"`
	StatsviewAddr string `json:"statsview_addr" env:"STATSVIEW_ADDR"`
}

// PathsConfig contains file and directory paths
type PathsConfig struct {
	Config     string `json:"config" env:"CONFIG"`
	Dumps      string `json:"dumps" env:"DUMPS"`
	Recordings string `json:"recordings" env:"RECORDINGS"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      768,
			Height:     720,
			Fullscreen: false,
			Scale:      3,
		},
		Video: VideoConfig{
			Backend:    string(graphics.BackendEbitengine),
			VSync:      true,
			Filter:     "nearest",
			Brightness: 1.0,
			Contrast:   1.0,
			Saturation: 1.0,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.8,
		},
		Input: InputConfig{
			Player1Keys: KeyMapping{
				Up:     "Up",
				Down:   "Down",
				Left:   "Left",
				Right:  "Right",
				A:      "Z",
				B:      "X",
				Start:  "Return",
				Select: "Space",
			},
			Player2Keys: KeyMapping{
				Up:     "1",
				Down:   "2",
				Left:   "3",
				Right:  "4",
				A:      "5",
				B:      "6",
				Start:  "7",
				Select: "8",
			},
		},
		Game: GameConfig{
			Region: "NTSC",
		},
		Debug: DebugConfig{
			EnableLogging: false,
			ShowFPS:       false,
		},
		Paths: PathsConfig{
			Config:     GetDefaultConfigDir(),
			Dumps:      "./dumps",
			Recordings: "./recordings",
		},
	}
}

// LoadFromFile loads configuration from a JSON file and then applies
// RINGQUEST_* environment overrides. A missing file is created with the
// current values and IsLoaded stays false.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := c.SaveToFile(path); err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config file: %w", err)
		}
		c.loaded = true
	}

	if err := c.ApplyEnv(); err != nil {
		return err
	}

	if err := c.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from RINGQUEST_* environment variables, for
// example RINGQUEST_GAME_REGION=PAL or RINGQUEST_AUDIO_VOLUME=0.5
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return &ConfigError{Field: "environment", Value: EnvPrefix + "*", Err: err}
	}
	return nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	c.configPath = path
	return nil
}

// Save saves the configuration to the current config file
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("no config file path set")
	}

	return c.SaveToFile(c.configPath)
}

// validate rejects values that cannot be repaired and resets out of range
// ones to their defaults
func (c *Config) validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return &ConfigError{
			Field: "window",
			Value: fmt.Sprintf("%dx%d", c.Window.Width, c.Window.Height),
			Err:   errors.New("negative window dimensions"),
		}
	}
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}

	if _, err := c.BackendType(); err != nil {
		return err
	}
	if c.Video.Filter != "nearest" && c.Video.Filter != "linear" {
		c.Video.Filter = "nearest"
	}
	if c.Video.Brightness < 0.1 || c.Video.Brightness > 3.0 {
		c.Video.Brightness = 1.0
	}
	if c.Video.Contrast < 0.1 || c.Video.Contrast > 3.0 {
		c.Video.Contrast = 1.0
	}
	if c.Video.Saturation < 0.0 || c.Video.Saturation > 3.0 {
		c.Video.Saturation = 1.0
	}

	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 44100
	}
	if c.Audio.Volume < 0.0 || c.Audio.Volume > 1.0 {
		c.Audio.Volume = 0.8
	}

	if _, err := c.Region(); err != nil {
		return err
	}

	if _, err := c.Bindings(); err != nil {
		return err
	}

	return nil
}

// Region returns the configured display region
func (c *Config) Region() (game.Region, error) {
	region, err := game.ParseRegion(c.Game.Region)
	if err != nil {
		return game.RegionNTSC, &ConfigError{Field: "game.region", Value: c.Game.Region, Err: err}
	}
	return region, nil
}

// BackendType returns the configured graphics backend
func (c *Config) BackendType() (graphics.BackendType, error) {
	backendType, err := graphics.ParseBackendType(c.Video.Backend)
	if err != nil {
		return "", &ConfigError{Field: "video.backend", Value: c.Video.Backend, Err: err}
	}
	return backendType, nil
}

// Bindings builds the keyboard bindings of both controllers
func (c *Config) Bindings() (map[graphics.Key]graphics.Binding, error) {
	bindings := make(map[graphics.Key]graphics.Binding)
	for port, mapping := range []KeyMapping{c.Input.Player1Keys, c.Input.Player2Keys} {
		if err := mapping.bind(port, bindings); err != nil {
			return nil, err
		}
	}
	return bindings, nil
}

func (m KeyMapping) bind(port int, bindings map[graphics.Key]graphics.Binding) error {
	entries := []struct {
		name   string
		button input.Button
	}{
		{m.Up, input.ButtonUp},
		{m.Down, input.ButtonDown},
		{m.Left, input.ButtonLeft},
		{m.Right, input.ButtonRight},
		{m.A, input.ButtonA},
		{m.B, input.ButtonB},
		{m.Start, input.ButtonStart},
		{m.Select, input.ButtonSelect},
	}

	for _, entry := range entries {
		if strings.TrimSpace(entry.name) == "" {
			continue
		}
		key, err := graphics.ParseKey(entry.name)
		if err != nil {
			return &ConfigError{
				Field: fmt.Sprintf("input.player%d_keys.%s", port+1, strings.ToLower(entry.button.String())),
				Value: entry.name,
				Err:   err,
			}
		}
		if key == graphics.KeyEscape {
			return &ConfigError{
				Field: fmt.Sprintf("input.player%d_keys", port+1),
				Value: entry.name,
				Err:   errors.New("escape is reserved for quitting"),
			}
		}
		bindings[key] = graphics.Binding{Port: port, Button: entry.button}
	}
	return nil
}

// GetWindowResolution returns the window size, falling back to the frame
// size times Scale when a dimension is unset
func (c *Config) GetWindowResolution() (int, int) {
	width, height := c.Window.Width, c.Window.Height
	if width == 0 || height == 0 {
		width = graphics.ScreenWidth * c.Window.Scale
		height = graphics.ScreenHeight * c.Window.Scale
	}
	return width, height
}

// IsLoaded returns whether the configuration was loaded from file
func (c *Config) IsLoaded() bool {
	return c.loaded
}

// GetConfigPath returns the path to the config file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	data, err := json.Marshal(c)
	if err != nil {
		return NewConfig()
	}

	clone := &Config{}
	if err := json.Unmarshal(data, clone); err != nil {
		return NewConfig()
	}

	clone.configPath = c.configPath
	clone.loaded = c.loaded

	return clone
}

// UpdateVideo updates video configuration
func (c *Config) UpdateVideo(backend string, brightness, contrast, saturation float64) {
	c.Video.Backend = backend
	c.Video.Brightness = brightness
	c.Video.Contrast = contrast
	c.Video.Saturation = saturation
}

// UpdateAudio updates audio configuration
func (c *Config) UpdateAudio(enabled bool, volume float64, sampleRate int) {
	c.Audio.Enabled = enabled
	c.Audio.Volume = volume
	c.Audio.SampleRate = sampleRate
}

// UpdateDebug updates debug configuration
func (c *Config) UpdateDebug(showFPS, enableLogging bool) {
	c.Debug.ShowFPS = showFPS
	c.Debug.EnableLogging = enableLogging
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	return "./config/ringquest.json"
}

// GetDefaultConfigDir returns the default configuration directory
func GetDefaultConfigDir() string {
	return "./config"
}

// ConfigError represents configuration-related errors
type ConfigError struct {
	Field string
	Value interface{}
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field '%s' with value '%v': %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
