package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Render cache
	CacheSize int

	// View defaults
	DefaultZoom float64
	RenderScale float64

	// Scratch directory for working copies; empty means os.TempDir
	WorkDir string

	// Logging: "json" or "text"
	LogFormat string
}

func Load() Config {
	cfg := Config{
		CacheSize: envInt("FREEBIRD_CACHE_SIZE", 10),

		DefaultZoom: envFloat("FREEBIRD_DEFAULT_ZOOM", 1.0),
		RenderScale: envFloat("FREEBIRD_RENDER_SCALE", 1.0),

		WorkDir: os.Getenv("FREEBIRD_WORK_DIR"),

		LogFormat: envOr("FREEBIRD_LOG_FORMAT", "text"),
	}

	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 10
	}
	if cfg.DefaultZoom <= 0 {
		cfg.DefaultZoom = 1.0
	}
	if cfg.RenderScale <= 0 {
		cfg.RenderScale = 1.0
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DefaultZoom < 0.1 || c.DefaultZoom > 5.0 {
		return fmt.Errorf("FREEBIRD_DEFAULT_ZOOM %.2f outside [0.1, 5.0]", c.DefaultZoom)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("FREEBIRD_LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.WorkDir != "" {
		info, err := os.Stat(c.WorkDir)
		if err != nil {
			return fmt.Errorf("FREEBIRD_WORK_DIR: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("FREEBIRD_WORK_DIR %s is not a directory", c.WorkDir)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
