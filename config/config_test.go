package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("got addr %q, want :8080", cfg.Addr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("got log level %q, want info", cfg.LogLevel)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("addr: \":9090\"\nlog_level: debug\nweb:\n  timeout: 5s\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("got addr %q, want :9090", cfg.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("got log level %q, want debug", cfg.LogLevel)
	}
	if cfg.Web["timeout"] != "5s" {
		t.Errorf("got web timeout %v, want 5s", cfg.Web["timeout"])
	}
}

func TestLoadInvalidLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: loud\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for bad log level")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.level}
			if got := cfg.SlogLevel(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

type clientConfig struct {
	Timeout time.Duration `json:"timeout" default:"30s" validate:"gte=1s"`
	Retries int           `json:"max_retries" default:"3" validate:"gte=0,lte=10"`
	Debug   bool          `json:"debug"`
}

func TestApplyDefaultsOnly(t *testing.T) {
	var cfg clientConfig
	if err := Apply(&cfg, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("got timeout %v, want 30s", cfg.Timeout)
	}
	if cfg.Retries != 3 {
		t.Errorf("got retries %d, want 3", cfg.Retries)
	}
}

func TestApplyMergesRawValues(t *testing.T) {
	var cfg clientConfig
	raw := map[string]any{
		"timeout":     "5s",
		"max_retries": 7,
		"debug":       true,
	}
	if err := Apply(&cfg, raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("got timeout %v, want 5s", cfg.Timeout)
	}
	if cfg.Retries != 7 {
		t.Errorf("got retries %d, want 7", cfg.Retries)
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
}

func TestApplyValidatesMergedResult(t *testing.T) {
	var cfg clientConfig
	if err := Apply(&cfg, map[string]any{"max_retries": 50}); err == nil {
		t.Fatal("expected validation error for out-of-range retries")
	}
}

func TestApplyNil(t *testing.T) {
	if err := Apply(nil, nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
