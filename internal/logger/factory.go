package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// WriterFactory creates log writers based on format
type WriterFactory struct{}

// NewWriterFactory creates a new writer factory
func NewWriterFactory() *WriterFactory {
	return &WriterFactory{}
}

// CreateConsoleWriter creates a stderr writer in the configured format
func (wf *WriterFactory) CreateConsoleWriter(format LogFormat) io.Writer {
	if format == FormatJSON {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

// CreateFileWriter creates a rotating file writer
func (wf *WriterFactory) CreateFileWriter(config LoggerConfig) io.Writer {
	// Lumberjack reports the write error later if this fails
	_ = os.MkdirAll(filepath.Dir(config.FilePath), 0755)

	lumberjackLogger := &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSizeMB,
		LocalTime:  true,
		MaxBackups: config.MaxBackups,
	}

	if config.Format == FormatConsole {
		return zerolog.ConsoleWriter{
			Out:        lumberjackLogger,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}
	return lumberjackLogger
}
