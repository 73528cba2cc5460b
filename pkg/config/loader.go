package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
)

// LoadFile reads server settings from a JSON or YAML file on top of cfg.
// The format is picked by extension (.yaml, .yml for YAML, otherwise JSON).
// Keys missing from the file keep their current value.
func LoadFile(cfg *ServerConfiguration, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		case os.IsPermission(err):
			return fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		default:
			return fmt.Errorf("failed to read file: %w", err)
		}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("%w in file %s: %w", ErrInvalidYAML, path, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w in file %s: %w", ErrInvalidJSON, path, err)
	}
	return nil
}

// Load builds a configuration from defaults, then the optional file, then
// the environment, and validates the result.
func Load(path string) (*ServerConfiguration, error) {
	cfg := DefaultServerConfiguration()
	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
