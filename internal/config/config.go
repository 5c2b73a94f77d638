package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Claude extraction
	AnthropicAPIKey string
	AnthropicModel  string
	ExtractTimeout  time.Duration
	ExtractRetries  int

	// Transcript limits
	MaxUploadBytes     int64
	MaxTranscriptChars int
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		ExtractTimeout:  envDuration("EXTRACT_TIMEOUT", 120*time.Second),
		ExtractRetries:  envInt("EXTRACT_MAX_RETRIES", 3),

		MaxUploadBytes:     envInt64("MAX_UPLOAD_BYTES", 2097152), // 2MB
		MaxTranscriptChars: envInt("MAX_TRANSCRIPT_CHARS", 400000),
	}

	if cfg.ExtractTimeout <= 0 {
		cfg.ExtractTimeout = 120 * time.Second
	}
	if cfg.ExtractRetries <= 0 {
		cfg.ExtractRetries = 3
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 2097152
	}
	if cfg.MaxTranscriptChars <= 0 {
		cfg.MaxTranscriptChars = 400000
	}

	return cfg
}

func (c Config) Validate() error {
	if c.AnthropicAPIKey == "" {
		return fmt.Errorf("ANTHROPIC_API_KEY is required")
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
