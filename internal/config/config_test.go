// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() does not validate: %v", err)
	}

	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" || cfg.Logging.Output != "stderr" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Decode.MaxDuration != 5*time.Minute {
		t.Errorf("MaxDuration = %s, want 5m", cfg.Decode.MaxDuration)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:   "valid configuration",
			modify: func(*Config) {},
		},
		{
			name:   "json to a file",
			modify: func(c *Config) { c.Logging.Format = "json"; c.Logging.Output = "/tmp/audrev.log" },
		},
		{
			name:   "unlimited duration",
			modify: func(c *Config) { c.Decode.MaxDuration = 0 },
		},
		{
			name:   "content type with parameters",
			modify: func(c *Config) { c.Decode.DefaultContentType = "audio/ogg; codecs=vorbis" },
		},
		{
			name:        "invalid log level",
			modify:      func(c *Config) { c.Logging.Level = "verbose" },
			expectError: true,
			errorMsg:    "level must be one of",
		},
		{
			name:        "invalid log format",
			modify:      func(c *Config) { c.Logging.Format = "xml" },
			expectError: true,
			errorMsg:    "format must be 'json' or 'text'",
		},
		{
			name:        "empty output",
			modify:      func(c *Config) { c.Logging.Output = "" },
			expectError: true,
			errorMsg:    "output cannot be empty",
		},
		{
			name:        "negative duration",
			modify:      func(c *Config) { c.Decode.MaxDuration = -time.Second },
			expectError: true,
			errorMsg:    "max_duration cannot be negative",
		},
		{
			name:        "bad content type",
			modify:      func(c *Config) { c.Decode.DefaultContentType = "not a type" },
			expectError: true,
			errorMsg:    "default_content_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				} else if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("expected error containing '%s', got '%s'", tt.errorMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("expected no error but got: %v", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: debug
  format: json
  output: stdout
decode:
  max_duration: 90s
  default_content_type: audio/mpeg
`

	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected format json, got %s", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("expected output stdout, got %s", cfg.Logging.Output)
	}
	if cfg.Decode.MaxDuration != 90*time.Second {
		t.Errorf("expected max_duration 90s, got %s", cfg.Decode.MaxDuration)
	}
	if cfg.Decode.DefaultContentType != "audio/mpeg" {
		t.Errorf("expected default_content_type audio/mpeg, got %s", cfg.Decode.DefaultContentType)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(configPath, []byte("logging:\n  level: warn\n"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" || cfg.Logging.Output != "stderr" {
		t.Errorf("defaults not kept: %+v", cfg.Logging)
	}
	if cfg.Decode.MaxDuration != 5*time.Minute {
		t.Errorf("expected default max_duration, got %s", cfg.Decode.MaxDuration)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		content  string
		errorMsg string
	}{
		{"malformed yaml", "logging: [unclosed", "failed to parse config file"},
		{"bad duration", "decode:\n  max_duration: soon\n", "failed to parse config file"},
		{"invalid values", "logging:\n  format: xml\n", "config validation failed"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, "config"+string(rune('a'+i))+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.errorMsg)
			}
		})
	}

	if _, err := Load(filepath.Join(tmpDir, "missing.yaml")); err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Load() of missing file error = %v", err)
	}
}
