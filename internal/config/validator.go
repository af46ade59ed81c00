package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	// Register custom validation for general file path (does not check existence, just format)
	_ = validate.RegisterValidation("filepath", func(fl validator.FieldLevel) bool {
		path := fl.Field().String()
		if path == "" {
			return true // Optional field
		}
		info, err := os.Stat(path)
		if err != nil {
			return true // Not created yet, lumberjack creates it on first write
		}
		return !info.IsDir()
	})

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(fl.Field().String())
		switch level {
		case "", "debug", "info", "warn", "error", "fatal", "panic": // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		switch format {
		case "", "console", "json": // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	// Register custom validation for target file output format
	_ = validate.RegisterValidation("sdformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		switch format {
		case "", OutputFormatPretty, OutputFormatCompact: // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	err := validate.Struct(cfg)
	if err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			var validationErrorMessages []string
			for _, e := range errs {
				fieldName := e.StructNamespace()
				if idx := strings.Index(fieldName, "."); idx >= 0 {
					fieldName = fieldName[idx+1:]
				}
				msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", fieldName, e.Tag())
				if e.Param() != "" {
					msg += fmt.Sprintf(" (expected: %s)", e.Param())
				}
				if e.Value() != nil && e.Value() != "" {
					msg += fmt.Sprintf(", actual: '%v'", e.Value())
				}
				validationErrorMessages = append(validationErrorMessages, msg)
			}
			return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(validationErrorMessages, "\n  "))
		}
		return fmt.Errorf("configuration validation error: %w", err)
	}
	return nil
}
