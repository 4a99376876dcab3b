package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// HomeEnv overrides the config directory when set.
const HomeEnv = "VOICINGS_HOME"

// OutputKind selects where playback goes
type OutputKind string

const (
	OutputAudio OutputKind = "audio"
	OutputMIDI  OutputKind = "midi"
)

// OutputConfig defines the playback target
type OutputConfig struct {
	Kind         OutputKind `json:"kind"`
	PortName     string     `json:"portName,omitempty"`
	Channel      int        `json:"channel"`
	ClickChannel int        `json:"clickChannel"`
	Velocity     int        `json:"velocity,omitempty"`
}

// PlaybackConfig holds transport defaults
type PlaybackConfig struct {
	Tempo     int     `json:"tempo"`
	Rhythm    string  `json:"rhythm"`
	Metronome bool    `json:"metronome"`
	Volume    float64 `json:"volume"`
}

// VoicingConfig holds generator defaults
type VoicingConfig struct {
	Type    string `json:"type"`
	Strings []int  `json:"strings,omitempty"`
	Strict  bool   `json:"strict,omitempty"`
}

// ServerConfig holds HTTP API defaults
type ServerConfig struct {
	Addr           string   `json:"addr"`
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	LastProject   string `json:"lastProject,omitempty"`
	Palette       string `json:"palette,omitempty"`
	AutosaveDelay int    `json:"autosaveDelayMs,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Output   OutputConfig   `json:"output"`
	Playback PlaybackConfig `json:"playback"`
	Voicing  VoicingConfig  `json:"voicing"`
	Server   ServerConfig   `json:"server"`
	UI       UIConfig       `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Kind:         OutputAudio,
			Channel:      0,
			ClickChannel: 9,
			Velocity:     90,
		},
		Playback: PlaybackConfig{
			Tempo:  120,
			Rhythm: "quarter",
			Volume: 0.8,
		},
		Voicing: VoicingConfig{
			Type: "drop2",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		UI: UIConfig{
			AutosaveDelay: 500,
		},
	}
}

// Dir returns the config directory path
func Dir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-voicings"), nil
}

// Path returns the full path to config.json
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config file. Missing fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func (c *Config) normalize() {
	def := DefaultConfig()
	switch c.Output.Kind {
	case OutputAudio, OutputMIDI:
	default:
		c.Output.Kind = def.Output.Kind
	}
	if c.Output.Channel < 0 || c.Output.Channel > 15 {
		c.Output.Channel = def.Output.Channel
	}
	if c.Output.ClickChannel < 0 || c.Output.ClickChannel > 15 {
		c.Output.ClickChannel = def.Output.ClickChannel
	}
	if c.Output.Velocity <= 0 || c.Output.Velocity > 127 {
		c.Output.Velocity = def.Output.Velocity
	}
	if c.Playback.Tempo <= 0 {
		c.Playback.Tempo = def.Playback.Tempo
	}
	if c.Playback.Volume < 0 || c.Playback.Volume > 1 {
		c.Playback.Volume = def.Playback.Volume
	}
	if c.Voicing.Type == "" {
		c.Voicing.Type = def.Voicing.Type
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
}
