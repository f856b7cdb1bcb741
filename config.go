package match

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the tunables of the matching kernel. It is read from the
// environment; every field has a default.
type Config struct {
	LogLevel  string `env:"MATCH_LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"MATCH_LOG_FORMAT" env-default:"json" validate:"oneof=json text"`

	// VolumeDivisionScale is the number of decimal places kept when a
	// volume-limited market order converts its remaining volume into quantity.
	VolumeDivisionScale int32 `env:"MATCH_VOLUME_DIVISION_SCALE" env-default:"20" validate:"gte=0,lte=64"`

	// DepthLimit is the default number of levels returned by depth queries.
	DepthLimit uint32 `env:"MATCH_DEPTH_LIMIT" env-default:"50" validate:"gte=1"`
}

var configValidator = validator.New()

// DefaultConfig returns the built-in defaults without reading the environment.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "json",
		VolumeDivisionScale: 20,
		DepthLimit:          50,
	}
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the field constraints.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}
	return nil
}

// NewLogger builds a slog logger writing to w in the configured format and level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
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
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
