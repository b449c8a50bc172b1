// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// #region config

// Config is the full server configuration.
type Config struct {
	Addr   string
	DBPath string
	Log    LogConfig
	Model  ModelConfig
	Static StaticConfig
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string
}

// ModelConfig points at the chat completions backend.
type ModelConfig struct {
	BaseURL     string
	APIKey      string
	Name        string
	MaxTokens   int
	Temperature float64
}

// StaticConfig controls frontend asset serving.
type StaticConfig struct {
	Dir string
}

// #endregion

// #region load

// Load reads the configuration from the environment, applying defaults
// for everything unset.
func Load() (Config, error) {
	cfg := Config{
		Addr:   envOr("ATELIER_ADDR", ":8080"),
		DBPath: envOr("ATELIER_DB", "atelier.db"),
		Log: LogConfig{
			Level: envOr("ATELIER_LOG_LEVEL", "info"),
		},
		Model: ModelConfig{
			BaseURL:     envOr("OPENAI_BASE_URL", "https://api.openai.com"),
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			Name:        envOr("ATELIER_MODEL", "gpt-3.5-turbo"),
			MaxTokens:   250,
			Temperature: 0.7,
		},
		Static: StaticConfig{
			Dir: envOr("ATELIER_STATIC_DIR", "."),
		},
	}

	if v := os.Getenv("ATELIER_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("ATELIER_MAX_TOKENS: %w", err)
		}
		cfg.Model.MaxTokens = n
	}
	if v := os.Getenv("ATELIER_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("ATELIER_TEMPERATURE: %w", err)
		}
		cfg.Model.Temperature = f
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// #endregion
