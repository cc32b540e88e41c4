// Package config prepares configuration structs the same way for the CLI, the
// server and the builtin plugin packages: struct-tag defaults, raw-value
// merging, then validation.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config is the process configuration for the sapphillon binary.
type Config struct {
	Addr     string `yaml:"addr" default:":8080" validate:"required"`
	LogLevel string `yaml:"log_level" default:"info" validate:"oneof=debug info warn error"`

	// Web carries raw values for the builtin web plugin package; they are
	// merged over the package's own defaults with Apply at wiring time.
	Web map[string]any `yaml:"web"`
}

// Load reads a yaml config file and validates it. An empty path yields the
// defaults. A missing or malformed file is an error; this module does not
// guess at half-present configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := validateStruct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SlogLevel maps the configured log level onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Apply prepares an arbitrary config struct: defaults from struct tags, then
// raw values merged over them, then validation of the final result. Raw
// values use json tags for field mapping and support duration and RFC 3339
// time strings.
func Apply(cfg any, raw map[string]any) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := defaults.Set(cfg); err != nil {
		return fmt.Errorf("apply defaults: %w", err)
	}
	if len(raw) > 0 {
		if err := decodeMap(raw, cfg); err != nil {
			return fmt.Errorf("apply config values: %w", err)
		}
	}
	return validateStruct(cfg)
}

// decodeMap merges a map[string]any into a struct using mapstructure.
func decodeMap(m map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "json",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}
	return decoder.Decode(m)
}

func validateStruct(cfg any) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		msgs := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			msgs = append(msgs, fmt.Sprintf(
				"field '%s' failed rule '%s'", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
	}
	return fmt.Errorf("config validation failed: %w", err)
}
