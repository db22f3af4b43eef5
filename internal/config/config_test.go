package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// isolate points the search path at empty directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	for _, key := range []string{"DRIFTROIDS_DB", "SSH_HOST", "SSH_PORT", "SSH_HOST_KEY", "WEB_HOST", "WEB_PORT", "SSH_DISPLAY_HOST", "DRIFTROIDS_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded YAML = %+v\nDefault() = %+v", cfg, Default())
	}
}

func TestLoadWithoutFiles(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, expected defaults", cfg)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	isolate(t)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", FileName), []byte("loop:\n  fps: 24\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Loop.FPS != 24 {
		t.Errorf("FPS = %d, expected 24 from ./configs", cfg.Loop.FPS)
	}

	home, _ := os.UserHomeDir()
	userDir := filepath.Join(home, ".driftroids", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, FileName), []byte("loop:\n  fps: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Loop.FPS != 50 {
		t.Errorf("FPS = %d, expected 50 from the user config", cfg.Loop.FPS)
	}
}

func TestLoadCustomPathKeepsDefaults(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `
game:
  lives: 5
  difficulty: hard
ssh:
  idle_timeout: 90s
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.Lives != 5 || cfg.Game.Difficulty != "hard" {
		t.Errorf("game = %+v, expected lives 5 on hard", cfg.Game)
	}
	if cfg.SSH.IdleTimeout != 90*time.Second {
		t.Errorf("IdleTimeout = %v, expected 90s", cfg.SSH.IdleTimeout)
	}
	if len(cfg.Game.Presets) != 3 || cfg.Canvas.Width != 480 {
		t.Error("unset values should keep their defaults")
	}
}

func TestLoadErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yaml")
	os.WriteFile(badYAML, []byte("loop: [unclosed"), 0o644)

	unknown := filepath.Join(dir, "unknown.yaml")
	os.WriteFile(unknown, []byte("game:\n  difficulty: nightmare\n"), 0o644)

	tests := []struct {
		name string
		path string
		is   error
	}{
		{name: "missing file", path: filepath.Join(dir, "missing.yaml")},
		{name: "invalid yaml", path: badYAML},
		{name: "unknown difficulty", path: unknown, is: ErrUnknownDifficulty},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.path)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Errorf("error = %v, expected %v", err, tc.is)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero canvas", func(c *Config) { c.Canvas.Width = 0 }},
		{"zero fps", func(c *Config) { c.Loop.FPS = 0 }},
		{"zero queue", func(c *Config) { c.Loop.QueueSize = 0 }},
		{"no lives", func(c *Config) { c.Game.Lives = 0 }},
		{"no presets", func(c *Config) { c.Game.Presets = nil }},
		{"still preset", func(c *Config) { c.Game.Presets[0].Speed = 0 }},
		{"negative speed", func(c *Config) { c.Game.Presets[1].Speed = -1 }},
		{"empty preset", func(c *Config) { c.Game.Presets[2].Asteroids = 0 }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	isolate(t)
	t.Setenv("DRIFTROIDS_DB", "/tmp/x.db")
	t.Setenv("SSH_PORT", "2323")
	t.Setenv("WEB_HOST", "127.0.0.1")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Storage.Path != "/tmp/x.db" || cfg.SSH.Port != "2323" || cfg.Web.Host != "127.0.0.1" {
		t.Errorf("environment not applied: %+v %+v %+v", cfg.Storage, cfg.SSH, cfg.Web)
	}
	if cfg.SSH.Host != "::" {
		t.Errorf("SSH host = %q, unset variables should keep the file value", cfg.SSH.Host)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("DRIFTROIDS_TEST_SET", "")
	if got := GetEnv("DRIFTROIDS_TEST_SET", "fallback"); got != "" {
		t.Errorf("GetEnv() = %q, an empty but set variable wins", got)
	}
	if got := GetEnv("DRIFTROIDS_TEST_UNSET_VARIABLE", "fallback"); got != "fallback" {
		t.Errorf("GetEnv() = %q, expected fallback", got)
	}
}

func TestFrameTime(t *testing.T) {
	if got := (LoopConfig{FPS: 50}).FrameTime(); got != 20*time.Millisecond {
		t.Errorf("FrameTime() = %v, expected 20ms", got)
	}
}
