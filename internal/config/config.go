// Package config loads driftroids settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownDifficulty is returned when the selected difficulty has no preset.
var ErrUnknownDifficulty = errors.New("config: unknown difficulty")

// Config is the complete application configuration.
type Config struct {
	Canvas  CanvasConfig  `yaml:"canvas"`
	Loop    LoopConfig    `yaml:"loop"`
	Game    GameConfig    `yaml:"game"`
	Text    TextConfig    `yaml:"text"`
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
	Web     WebConfig     `yaml:"web"`
	Log     LogConfig     `yaml:"log"`
}

// CanvasConfig is the logical size of the playfield.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LoopConfig paces the game loop.
type LoopConfig struct {
	FPS       int `yaml:"fps"`
	QueueSize int `yaml:"queue_size"` // UI event queue capacity
}

// FrameTime returns the target duration of one frame.
func (c LoopConfig) FrameTime() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// GameConfig tunes rounds.
type GameConfig struct {
	Lives      int                `yaml:"lives"`
	Difficulty string             `yaml:"difficulty"`
	Presets    []DifficultyPreset `yaml:"presets"`
}

// DifficultyPreset is one selectable difficulty.
type DifficultyPreset struct {
	Name      string  `yaml:"name"`
	Asteroids int     `yaml:"asteroids"`
	Speed     float64 `yaml:"speed"`
}

// TextConfig holds the status strings shown between rounds.
type TextConfig struct {
	Ready string `yaml:"ready"`
	Pause string `yaml:"pause"`
	Lose  string `yaml:"lose"`
	Win   string `yaml:"win"`
}

// StorageConfig locates the high-score database.
type StorageConfig struct {
	Path      string `yaml:"path"`
	TableSize int    `yaml:"table_size"`
}

// SSHConfig configures the multiplayer-less SSH host.
type SSHConfig struct {
	Host        string        `yaml:"host"`
	Port        string        `yaml:"port"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// WebConfig configures the high-score web page.
type WebConfig struct {
	Host        string `yaml:"host"`
	Port        string `yaml:"port"`
	DisplayHost string `yaml:"display_host"` // SSH host advertised on the page
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Validate checks that the configuration can run a game.
func (c Config) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("config: canvas size %vx%v must be positive", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Loop.FPS <= 0 {
		return fmt.Errorf("config: fps %d must be positive", c.Loop.FPS)
	}
	if c.Loop.QueueSize <= 0 {
		return fmt.Errorf("config: queue size %d must be positive", c.Loop.QueueSize)
	}
	if c.Game.Lives <= 0 {
		return fmt.Errorf("config: lives %d must be positive", c.Game.Lives)
	}
	for _, p := range c.Game.Presets {
		if p.Asteroids <= 0 || p.Speed <= 0 {
			return fmt.Errorf("config: preset %q needs positive asteroids and speed", p.Name)
		}
	}
	if _, ok := c.Preset(c.Game.Difficulty); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDifficulty, c.Game.Difficulty)
	}
	return nil
}

// Preset returns the difficulty preset called name.
func (c Config) Preset(name string) (DifficultyPreset, bool) {
	for _, p := range c.Game.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return DifficultyPreset{}, false
}
