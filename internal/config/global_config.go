package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ragujp/prometheus-sample-configs/internal/errorwrapper"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	OoklaConfig     OoklaConfig     `json:"ookla_config,omitempty" yaml:"ookla_config,omitempty"`
	EC2Config       EC2Config       `json:"ec2_config,omitempty" yaml:"ec2_config,omitempty"`
	ResolverConfig  ResolverConfig  `json:"resolver_config,omitempty" yaml:"resolver_config,omitempty"`
	SchedulerConfig SchedulerConfig `json:"scheduler_config,omitempty" yaml:"scheduler_config,omitempty"`
	LogConfig       LogConfig       `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		OoklaConfig:     NewDefaultOoklaConfig(),
		EC2Config:       NewDefaultEC2Config(),
		ResolverConfig:  NewDefaultResolverConfig(),
		SchedulerConfig: NewDefaultSchedulerConfig(),
		LogConfig:       NewDefaultLogConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath, supports both JSON and YAML formats.
// YAML is preferred if the file extension is .yaml or .yml.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		if providedPath != "" {
			return nil, errorwrapper.NewValidationError("config_file", providedPath, "config file does not exist")
		}
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse config content")
	}

	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}
