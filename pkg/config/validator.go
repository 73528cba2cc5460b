package config

import (
	"fmt"

	"github.com/getmockd/mockigd/pkg/logging"
)

// ValidationError represents a validation failure with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

func validatePort(field string, port int) error {
	if port < 0 || port > 65535 {
		return &ValidationError{Field: field, Message: fmt.Sprintf("port %d out of range 0-65535", port)}
	}
	return nil
}

// Validate checks the configuration for values the server cannot use.
// Fault codes are not checked against the UPnP registry.
func (c *ServerConfiguration) Validate() error {
	if c.Host == "" {
		return &ValidationError{Field: "host", Message: "host is required"}
	}
	if err := validatePort("httpPort", c.HTTPPort); err != nil {
		return err
	}
	if err := validatePort("ssdpPort", c.SSDPPort); err != nil {
		return err
	}
	if c.DefaultFaultCode <= 0 {
		return &ValidationError{Field: "defaultFaultCode", Message: "must be positive"}
	}
	if c.MaxLogEntries < 0 {
		return &ValidationError{Field: "maxLogEntries", Message: "must not be negative"}
	}
	if c.MaxBodySize <= 0 {
		return &ValidationError{Field: "maxBodySize", Message: "must be positive"}
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return &ValidationError{Field: "timeouts", Message: "must not be negative"}
	}
	if !logging.ValidLevel(c.LogLevel) {
		return &ValidationError{Field: "logLevel", Message: fmt.Sprintf("unknown level %q", c.LogLevel)}
	}
	if !logging.ValidFormat(c.LogFormat) {
		return &ValidationError{Field: "logFormat", Message: fmt.Sprintf("unknown format %q", c.LogFormat)}
	}
	return nil
}

// Logging returns the logging configuration the settings describe.
func (c *ServerConfiguration) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.LogLevel)
	cfg.Format = logging.ParseFormat(c.LogFormat)
	return cfg
}
