package app

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/sbmops/scorecard/pkg/logging"
)

// NewLogger creates a configured logger. Level precedence:
//  1. LOG_LEVEL environment variable (explicit always wins)
//  2. -v/--verbose flag (shortcut for debug)
//  3. -q/--quiet flag (shortcut for warn)
//  4. Default (info)
func NewLogger(config *Config) zerolog.Logger {
	var logger zerolog.Logger
	switch config.LogFormat {
	case "json":
		logger = logging.NewJSON(os.Stderr)
	case "console":
		logger = logging.NewConsole()
	default:
		logger = logging.New(os.Stderr)
	}
	return logger.Level(determineLogLevel(config))
}

func determineLogLevel(config *Config) zerolog.Level {
	if config.LogLevel != "" {
		if level, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			return level
		}
	}
	if config.Verbose {
		return zerolog.DebugLevel
	}
	if config.Quiet {
		return zerolog.WarnLevel
	}
	return zerolog.InfoLevel
}
