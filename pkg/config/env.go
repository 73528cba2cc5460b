package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "MOCKIGD_"

// ApplyEnv overrides fields of cfg from MOCKIGD_* environment variables.
// Unset variables leave the current value in place.
func ApplyEnv(cfg *ServerConfiguration) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// FromEnv returns the defaults overridden by the environment.
func FromEnv() (*ServerConfiguration, error) {
	cfg := DefaultServerConfiguration()
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
