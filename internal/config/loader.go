package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search path.
const FileName = "driftroids.yaml"

// Load reads the configuration, applies environment overrides and validates it.
// Search order: customPath -> ~/.driftroids/configs/driftroids.yaml ->
// ./configs/driftroids.yaml -> embedded default.
// Values missing from a file keep their defaults.
func Load(customPath string) (Config, error) {
	cfg := Default()

	data, path, err := find(customPath)
	if err != nil {
		return cfg, err
	}
	if data == nil {
		data, path = defaultYAML, "embedded default"
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	ApplyEnv(&cfg)
	return cfg, cfg.Validate()
}

// find returns the first config file in the search path. A custom path
// that cannot be read is an error; otherwise a missing file yields nil data.
func find(customPath string) ([]byte, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, customPath, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return data, customPath, nil
	}

	var candidates []string
	if userPath := userConfigPath(FileName); userPath != "" {
		candidates = append(candidates, userPath)
	}
	candidates = append(candidates, filepath.Join("configs", FileName))

	for _, p := range candidates {
		if data, err := os.ReadFile(p); err == nil {
			return data, p, nil
		}
	}
	return nil, "", nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".driftroids", "configs", filename)
}
