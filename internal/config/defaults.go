package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/driftroids.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches the embedded YAML.
func Default() Config {
	return Config{
		Canvas: CanvasConfig{Width: 480, Height: 320},
		Loop:   LoopConfig{FPS: 30, QueueSize: 64},
		Game: GameConfig{
			Lives:      3,
			Difficulty: "normal",
			Presets: []DifficultyPreset{
				{Name: "easy", Asteroids: 3, Speed: 0.8},
				{Name: "normal", Asteroids: 5, Speed: 1.0},
				{Name: "hard", Asteroids: 8, Speed: 1.4},
			},
		},
		Text: TextConfig{
			Ready: "Touch to start",
			Pause: "Paused - touch to resume",
			Lose:  "Game over - touch to play again",
			Win:   "You win! Touch to play again",
		},
		Storage: StorageConfig{Path: "~/.driftroids/scores.db", TableSize: 10},
		SSH: SSHConfig{
			Host:        "::",
			Port:        "2222",
			HostKeyPath: "~/.driftroids/host_key",
			IdleTimeout: 10 * time.Minute,
		},
		Web: WebConfig{Host: "0.0.0.0", Port: "8080", DisplayHost: "localhost"},
		Log: LogConfig{Level: "info"},
	}
}
