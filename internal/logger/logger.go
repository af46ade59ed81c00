package logger

import "github.com/rs/zerolog"

// Logger represents the main logger with configuration
type Logger struct {
	zerolog zerolog.Logger
	config  LoggerConfig
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// GetConfig returns the resolved logger configuration
func (l *Logger) GetConfig() LoggerConfig {
	return l.config
}

// New creates a logger from configuration file options
func New(opts Options) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().WithOptions(opts).Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}
