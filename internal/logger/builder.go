package logger

import (
	"io"
	stdlog "log" // Standard Go log package, aliased to avoid conflict with zerolog field

	"github.com/rs/zerolog"

	"github.com/ragujp/prometheus-sample-configs/internal/errorwrapper"
)

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	config   LoggerConfig
	factory  *WriterFactory
	parseErr error
}

// NewLoggerBuilder creates a new logger builder
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		config:  DefaultLoggerConfig(),
		factory: NewWriterFactory(),
	}
}

// WithOptions applies string-typed options from a configuration file
func (lb *LoggerBuilder) WithOptions(opts Options) *LoggerBuilder {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		lb.parseErr = err
		return lb
	}

	lb.config.Level = level
	lb.config.Format = ParseFormat(opts.Format)
	if opts.File != "" {
		lb.config.EnableFile = true
		lb.config.FilePath = opts.File
	}
	if opts.MaxSizeMB > 0 {
		lb.config.MaxSizeMB = opts.MaxSizeMB
	}
	if opts.MaxBackups > 0 {
		lb.config.MaxBackups = opts.MaxBackups
	}
	return lb
}

// WithConsole toggles console output
func (lb *LoggerBuilder) WithConsole(enabled bool) *LoggerBuilder {
	lb.config.EnableConsole = enabled
	return lb
}

// WithLevel overrides the log level
func (lb *LoggerBuilder) WithLevel(level zerolog.Level) *LoggerBuilder {
	lb.config.Level = level
	return lb
}

// Build creates the logger instance
func (lb *LoggerBuilder) Build() (*Logger, error) {
	if lb.parseErr != nil {
		return nil, lb.parseErr
	}

	if err := lb.validateConfig(); err != nil {
		return nil, err
	}

	writers := lb.createWriters()
	if len(writers) == 0 {
		return nil, errorwrapper.NewError("no output writers configured")
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	zerologInstance := zerolog.New(multiWriter).
		Level(lb.config.Level).
		With().
		Timestamp().
		Logger()

	// Configure global settings
	zerolog.SetGlobalLevel(lb.config.Level)
	lb.configureStandardLog(zerologInstance)

	logger := &Logger{
		zerolog: zerologInstance,
		config:  lb.config,
	}

	return logger, nil
}

// validateConfig validates the logger configuration
func (lb *LoggerBuilder) validateConfig() error {
	if lb.config.EnableFile && lb.config.FilePath == "" {
		return errorwrapper.NewValidationError("file_path", lb.config.FilePath, "file path required when file logging enabled")
	}

	if lb.config.MaxSizeMB <= 0 {
		return errorwrapper.NewValidationError("max_size_mb", lb.config.MaxSizeMB, "max size must be positive")
	}

	return nil
}

// createWriters creates the appropriate writers based on configuration
func (lb *LoggerBuilder) createWriters() []io.Writer {
	var writers []io.Writer

	if lb.config.EnableConsole {
		consoleWriter := lb.factory.CreateConsoleWriter(lb.config.Format)
		writers = append(writers, consoleWriter)
	}

	if lb.config.EnableFile {
		fileWriter := lb.factory.CreateFileWriter(lb.config)
		writers = append(writers, fileWriter)
	}

	return writers
}

// configureStandardLog configures standard Go log package
func (lb *LoggerBuilder) configureStandardLog(logger zerolog.Logger) {
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)
}
