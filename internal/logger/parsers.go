package logger

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/ragujp/prometheus-sample-configs/internal/errorwrapper"
)

// ParseLevel parses a string log level to zerolog.Level. An empty string
// maps to the default info level.
func ParseLevel(levelStr string) (zerolog.Level, error) {
	if levelStr == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return zerolog.InfoLevel, errorwrapper.WrapError(err, "invalid log level")
	}
	return level, nil
}

// ParseFormat parses a string format to LogFormat, defaulting to console
func ParseFormat(formatStr string) LogFormat {
	switch strings.ToLower(formatStr) {
	case "json":
		return FormatJSON
	default:
		return FormatConsole
	}
}
