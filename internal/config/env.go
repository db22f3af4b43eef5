package config

import "os"

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// ApplyEnv overrides deployment settings from the environment.
func ApplyEnv(cfg *Config) {
	cfg.Storage.Path = GetEnv("DRIFTROIDS_DB", cfg.Storage.Path)
	cfg.SSH.Host = GetEnv("SSH_HOST", cfg.SSH.Host)
	cfg.SSH.Port = GetEnv("SSH_PORT", cfg.SSH.Port)
	cfg.SSH.HostKeyPath = GetEnv("SSH_HOST_KEY", cfg.SSH.HostKeyPath)
	cfg.Web.Host = GetEnv("WEB_HOST", cfg.Web.Host)
	cfg.Web.Port = GetEnv("WEB_PORT", cfg.Web.Port)
	cfg.Web.DisplayHost = GetEnv("SSH_DISPLAY_HOST", cfg.Web.DisplayHost)
	cfg.Log.Level = GetEnv("DRIFTROIDS_LOG_LEVEL", cfg.Log.Level)
}
