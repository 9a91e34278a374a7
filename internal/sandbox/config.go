package sandbox

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config controls the sandbox through environment variables.
type Config struct {
	// Level is the level loaded at startup and written by Ctrl+S.
	Level string `env:"SANDBOX_LEVEL" envDefault:"scratch"`

	LogLevel  string `env:"SANDBOX_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"SANDBOX_LOG_FORMAT" envDefault:"text"`

	WindowWidth  int32 `env:"SANDBOX_WIDTH" envDefault:"1280"`
	WindowHeight int32 `env:"SANDBOX_HEIGHT" envDefault:"720"`
}

// LoadConfig reads the sandbox configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("sandbox: parse env: %w", err)
	}
	return cfg, nil
}

// Logger builds the sandbox logger from the configured level and format.
func (c Config) Logger(w io.Writer) *slog.Logger {
	var level slog.Level
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
