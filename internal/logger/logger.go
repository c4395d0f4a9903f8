// Package logger provides logging utilities built on the bullets library.
//
// It wraps [bullets.Logger] with convenience constructors for creating
// loggers at various levels and a silent logger for tests or components
// that have not been handed a logger yet.
package logger

import (
	"os"

	"github.com/sgaunet/bullets"
)

// NewLogger creates a new logger that writes to stdout at the specified
// level. Unknown level names default to "info".
func NewLogger(logLevel string) *bullets.Logger {
	var level bullets.Level
	switch logLevel {
	case "debug":
		level = bullets.DebugLevel
	case "info":
		level = bullets.InfoLevel
	case "warn":
		level = bullets.WarnLevel
	case "error":
		level = bullets.ErrorLevel
	default:
		level = bullets.InfoLevel
	}
	logger := bullets.New(os.Stdout)
	logger.SetLevel(level)
	return logger
}

// NoLogger creates a logger that suppresses all output by setting the level
// to Fatal.
func NoLogger() *bullets.Logger {
	logger := bullets.New(os.Stdout)
	logger.SetLevel(bullets.FatalLevel)
	return logger
}
