// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP listener
	Addr string

	// Logging
	LogLevel  string
	LogFormat string

	// Upload limits
	MaxUploadBytes int64

	// Graceful shutdown
	ShutdownTimeout time.Duration
}

const (
	defaultAddr            = ":8080"
	defaultMaxUploadBytes  = 20 << 20 // 20MB
	defaultShutdownTimeout = 10 * time.Second
)

func Load() Config {
	cfg := Config{
		Addr: envOr("DOCXTABLE_ADDR", defaultAddr),

		LogLevel:  envOr("DOCXTABLE_LOG_LEVEL", "info"),
		LogFormat: envOr("DOCXTABLE_LOG_FORMAT", "text"),

		MaxUploadBytes: envInt64("DOCXTABLE_MAX_UPLOAD_BYTES", defaultMaxUploadBytes),

		ShutdownTimeout: envDuration("DOCXTABLE_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("DOCXTABLE_ADDR is required")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("DOCXTABLE_LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("DOCXTABLE_LOG_FORMAT %q is not text or json", c.LogFormat)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("DOCXTABLE_MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
