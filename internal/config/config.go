package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config represents runtime configuration derived from environment variables.
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Database DatabaseConfig
	OpenAI   OpenAIConfig
	Matching MatchingConfig
}

// ServerConfig holds HTTP server runtime parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

// DatabaseConfig holds the PostgreSQL connection string.
type DatabaseConfig struct {
	URL string
}

// OpenAIConfig holds reasoning-service client parameters.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// MatchingConfig holds matching-run parameters.
type MatchingConfig struct {
	Workers int
}

const (
	defaultPort        = "8080"
	defaultReadTimeout = 10 * time.Second
	// A matching pass holds the trigger request open while it scores every
	// candidate pair, so the write timeout must cover a full run.
	defaultWriteTimeout    = 15 * time.Minute
	defaultShutdownTimeout = 5 * time.Second

	defaultLogFormat = "json"

	defaultOpenAIModel       = "gpt-4o-mini"
	defaultOpenAITemperature = 0.3
	defaultOpenAIMaxTokens   = 500
	defaultOpenAITimeout     = 30 * time.Second

	defaultMatchWorkers = 4
)

// Load reads configuration from environment variables, applying defaults when
// values are not provided. The database URL and OpenAI API key are required;
// their absence is a startup error rather than a per-request failure.
func Load() (Config, error) {
	// Cloud Run sets PORT, but allow SERVER_PORT override for local dev
	port := getEnv("PORT", "")
	if port == "" {
		port = getEnv("SERVER_PORT", defaultPort)
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: defaultLogFormat,
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		OpenAI: OpenAIConfig{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			Model:       getEnv("OPENAI_MODEL", defaultOpenAIModel),
			Temperature: defaultOpenAITemperature,
			MaxTokens:   defaultOpenAIMaxTokens,
			Timeout:     defaultOpenAITimeout,
		},
		Matching: MatchingConfig{
			Workers: defaultMatchWorkers,
		},
	}

	if cfg.Database.URL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.OpenAI.APIKey == "" {
		return Config{}, fmt.Errorf("OPENAI_API_KEY is required")
	}

	if v := os.Getenv("SERVER_READ_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_READ_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ReadTimeout = d
	}

	if v := os.Getenv("SERVER_WRITE_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.WriteTimeout = d
	}

	if v := os.Getenv("SERVER_SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	if v := os.Getenv("OPENAI_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OPENAI_TIMEOUT_SECONDS: %w", err)
		}
		cfg.OpenAI.Timeout = d
	}

	if v := os.Getenv("OPENAI_TEMPERATURE"); v != "" {
		temp, err := strconv.ParseFloat(v, 32)
		if err != nil || temp < 0 {
			return Config{}, fmt.Errorf("invalid OPENAI_TEMPERATURE: must be a non-negative number")
		}
		cfg.OpenAI.Temperature = float32(temp)
	}

	if v := os.Getenv("OPENAI_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid OPENAI_MAX_TOKENS: must be a positive integer")
		}
		cfg.OpenAI.MaxTokens = n
	}

	if v := os.Getenv("MATCH_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid MATCH_WORKERS: must be a positive integer")
		}
		cfg.Matching.Workers = n
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.Logging.Level = level
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "text":
			cfg.Logging.Format = v
		default:
			return Config{}, fmt.Errorf("invalid LOG_FORMAT: must be 'json' or 'text'")
		}
	}

	return cfg, nil
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("must be a non-negative integer")
	}
	return time.Duration(seconds) * time.Second, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be one of debug, info, warn, error")
	}
}
