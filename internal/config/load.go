package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"riddlebench/internal/aggregate"
)

// Load reads, parses, normalizes, and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes config YAML, rejecting unknown fields and multiple
// documents.
func Parse(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Normalize fills defaults for optional settings.
func Normalize(cfg *Config) {
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = DefaultAddr
	}
	if cfg.Report.Mode == "" {
		cfg.Report.Mode = string(aggregate.DefaultMode)
	}
}

// Validate checks the normalized config for usable values.
func Validate(cfg *Config) error {
	if cfg.Store.Root == "" {
		return fmt.Errorf("config: store.root is required")
	}
	if _, err := aggregate.ParseMode(cfg.Report.Mode); err != nil {
		return fmt.Errorf("config: report.mode: %w", err)
	}
	return nil
}
