// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"mime"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete command configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Decode  DecodeConfig  `yaml:"decode"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// DecodeConfig contains decoding limits and defaults
type DecodeConfig struct {
	MaxDuration        time.Duration `yaml:"max_duration"` // 0 means unlimited
	DefaultContentType string        `yaml:"default_content_type"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Decode: DecodeConfig{
			MaxDuration: 5 * time.Minute,
		},
	}
}

// Load reads and parses the configuration file. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate checks every section of the configuration
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := c.Decode.Validate(); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return nil
}

// Validate validates logging configuration
func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [debug, info, warn, error], got '%s'", l.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("format must be 'json' or 'text', got '%s'", l.Format)
	}

	// anything but stdout and stderr is a file path
	if l.Output == "" {
		return fmt.Errorf("output cannot be empty")
	}

	return nil
}

// Validate validates decode configuration
func (d *DecodeConfig) Validate() error {
	if d.MaxDuration < 0 {
		return fmt.Errorf("max_duration cannot be negative, got %s", d.MaxDuration)
	}

	if d.DefaultContentType != "" {
		if _, _, err := mime.ParseMediaType(d.DefaultContentType); err != nil {
			return fmt.Errorf("default_content_type %q is not a media type: %w", d.DefaultContentType, err)
		}
	}

	return nil
}
