// Package logging provides structured logging configuration for proxmoxd.
//
// This package wraps log/slog to provide consistent logging across all
// proxmoxd components. Because stdout carries the MCP protocol stream, log
// output always goes to stderr, an optional log file, or both.
//
// # Usage
//
// Create a logger with desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("server started", "transport", "stdio")
//	logger.Error("login failed", "error", err)
//
// # Output Formats
//
//   - Text: Human-readable format for development
//   - JSON: Structured format for log aggregation systems
//
// # Integration
//
// Components should accept a *slog.Logger in their constructor or via a
// setter. If no logger is provided, use logging.Nop() for a no-op logger.
package logging
