// Package logging provides structured logging configuration for mockigd.
//
// This package wraps log/slog to provide consistent logging across all
// components. It supports configurable log levels and output formats.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("server started", "port", 5000)
//
// # Integration
//
// Components accept a *slog.Logger through a setter or an option. If no
// logger is provided they use logging.Nop(). Component tags a logger with
// the subsystem name ("engine", "ssdp", "registry").
//
// Operational logs are not the request log. Tests that need to know which
// calls a gateway saw should read the requestlog store instead.
package logging
