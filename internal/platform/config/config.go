// Package config loads application configuration from environment variables.
// All variables use the LESSON_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Cache          CacheConfig
	AI             AIConfig
	Generator      GeneratorConfig
	Log            LogConfig
	CurriculumPath string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// CacheConfig holds Redis connection settings.
type CacheConfig struct {
	URL     string
	Enabled bool
}

// AIConfig holds configuration for all AI providers.
type AIConfig struct {
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
}

// OpenAIConfig holds OpenAI provider settings.
type OpenAIConfig struct {
	APIKey string
}

// OpenRouterConfig holds OpenRouter provider settings.
type OpenRouterConfig struct {
	APIKey string
}

// GeneratorConfig selects the lesson analyzer implementation.
type GeneratorConfig struct {
	// Mode is "rules" for the deterministic pipeline or "external" for
	// the AI service with rule-based fallback.
	Mode string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with LESSON_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("LESSON_SERVER_PORT", 8080),
			Host: envStr("LESSON_SERVER_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URL:      envStr("LESSON_DATABASE_URL", ""),
			MaxConns: envInt("LESSON_DATABASE_MAX_CONNS", 25),
			MinConns: envInt("LESSON_DATABASE_MIN_CONNS", 5),
		},
		Cache: CacheConfig{
			URL:     envStr("LESSON_CACHE_URL", "redis://localhost:6379"),
			Enabled: envBool("LESSON_CACHE_ENABLED", false),
		},
		AI: AIConfig{
			OpenAI: OpenAIConfig{
				APIKey: envStr("LESSON_AI_OPENAI_API_KEY", ""),
			},
			OpenRouter: OpenRouterConfig{
				APIKey: envStr("LESSON_AI_OPENROUTER_API_KEY", ""),
			},
		},
		Generator: GeneratorConfig{
			Mode: envStr("LESSON_GENERATOR_MODE", "rules"),
		},
		Log: LogConfig{
			Level:  envStr("LESSON_LOG_LEVEL", "info"),
			Format: envStr("LESSON_LOG_FORMAT", "json"),
		},
		CurriculumPath: envStr("LESSON_CURRICULUM_PATH", "./curriculum"),
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	switch c.Generator.Mode {
	case "rules":
	case "external":
		if !c.HasAIProvider() {
			return fmt.Errorf("LESSON_GENERATOR_MODE=external requires an AI provider API key")
		}
	default:
		return fmt.Errorf("LESSON_GENERATOR_MODE must be 'rules' or 'external', got %q", c.Generator.Mode)
	}

	level := strings.ToLower(c.Log.Level)
	if level != "debug" && level != "info" && level != "warn" && level != "error" {
		return fmt.Errorf("LESSON_LOG_LEVEL must be debug, info, warn, or error, got %q", c.Log.Level)
	}

	return nil
}

// HasAIProvider returns true if at least one AI provider is configured.
func (c *Config) HasAIProvider() bool {
	return c.AI.OpenAI.APIKey != "" || c.AI.OpenRouter.APIKey != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
