package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ConfigManager provides centralized configuration management with hot-reload capabilities
type ConfigManager struct {
	mu           sync.RWMutex
	config       *GlobalConfig
	configPath   string
	logger       zerolog.Logger
	watcher      *fsnotify.Watcher
	stopChan     chan struct{}
	lastModified time.Time

	validationEnabled bool
	hotReloadEnabled  bool
	reloadDelay       time.Duration
	overrides         func(*GlobalConfig)
}

// ConfigManagerOptions holds options for creating a ConfigManager
type ConfigManagerOptions struct {
	Logger            zerolog.Logger
	ValidationEnabled bool
	HotReloadEnabled  bool
	ReloadDelay       time.Duration
	// Overrides mutates every loaded configuration before validation,
	// keeping command-line settings ahead of file reloads.
	Overrides func(*GlobalConfig)
}

// DefaultConfigManagerOptions returns default options for ConfigManager
func DefaultConfigManagerOptions() ConfigManagerOptions {
	return ConfigManagerOptions{
		Logger:            zerolog.Nop(),
		ValidationEnabled: true,
		HotReloadEnabled:  false,
		ReloadDelay:       time.Second * 2, // 2 second delay to avoid rapid reloads
	}
}

// NewConfigManager creates a new centralized configuration manager
func NewConfigManager(configPath string, opts ConfigManagerOptions) (*ConfigManager, error) {
	cm := &ConfigManager{
		configPath:        configPath,
		logger:            opts.Logger.With().Str("component", "ConfigManager").Logger(),
		stopChan:          make(chan struct{}),
		validationEnabled: opts.ValidationEnabled,
		hotReloadEnabled:  opts.HotReloadEnabled,
		reloadDelay:       opts.ReloadDelay,
		overrides:         opts.Overrides,
	}

	// Load initial configuration
	if err := cm.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load initial configuration: %w", err)
	}

	// Setup file watcher for hot-reload if enabled
	if cm.hotReloadEnabled && cm.configPath != "" {
		if err := cm.setupFileWatcher(); err != nil {
			cm.logger.Warn().Err(err).Msg("Failed to setup file watcher, hot-reload disabled")
			cm.hotReloadEnabled = false
		}
	}

	return cm, nil
}

// GetConfig returns the current configuration (thread-safe)
func (cm *ConfigManager) GetConfig() *GlobalConfig {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.config == nil {
		return NewDefaultGlobalConfig()
	}

	// Return a copy to prevent external modifications
	copied := *cm.config
	return &copied
}

// ReloadConfig manually reloads the configuration from file
func (cm *ConfigManager) ReloadConfig() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	return cm.loadConfig()
}

// GetConfigPath returns the current configuration file path
func (cm *ConfigManager) GetConfigPath() string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.configPath
}

// IsHotReloadEnabled returns whether hot-reload is enabled
func (cm *ConfigManager) IsHotReloadEnabled() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.hotReloadEnabled
}

// Close stops the configuration manager and cleans up resources
func (cm *ConfigManager) Close() error {
	close(cm.stopChan)

	if cm.watcher != nil {
		return cm.watcher.Close()
	}

	return nil
}

// StartHotReload starts the hot-reload goroutine (non-blocking)
func (cm *ConfigManager) StartHotReload(ctx context.Context) {
	if !cm.hotReloadEnabled {
		return
	}

	go cm.hotReloadLoop(ctx)
}

// loadConfig loads configuration from file (internal method, assumes lock is held)
func (cm *ConfigManager) loadConfig() error {
	// Determine config path if not set
	if cm.configPath == "" {
		cm.configPath = GetConfigPath("")
	}

	config, err := LoadGlobalConfig(cm.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cm.overrides != nil {
		cm.overrides(config)
	}

	// Validate configuration if validation is enabled
	if cm.validationEnabled {
		if err := ValidateConfig(config); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	// Update last modified time if file exists
	if cm.configPath != "" {
		if stat, err := os.Stat(cm.configPath); err == nil {
			cm.lastModified = stat.ModTime()
		}
	}

	cm.config = config
	cm.logger.Info().Str("path", cm.configPath).Msg("Configuration loaded successfully")

	return nil
}

// setupFileWatcher sets up file system watcher for hot-reload
func (cm *ConfigManager) setupFileWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory containing the config file
	configDir := filepath.Dir(cm.configPath)
	if err := watcher.Add(configDir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch config directory '%s': %w", configDir, err)
	}

	cm.watcher = watcher
	cm.logger.Info().Str("directory", configDir).Msg("File watcher setup for hot-reload")

	return nil
}

// hotReloadLoop runs the hot-reload monitoring loop
func (cm *ConfigManager) hotReloadLoop(ctx context.Context) {
	if cm.watcher == nil {
		return
	}

	reloadTimer := time.NewTimer(0)
	reloadTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			cm.logger.Info().Msg("Hot-reload loop stopped due to context cancellation")
			return

		case <-cm.stopChan:
			cm.logger.Info().Msg("Hot-reload loop stopped")
			return

		case event, ok := <-cm.watcher.Events:
			if !ok {
				return
			}

			// Check if the event is for our config file
			if event.Name == cm.configPath && (event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create) {
				cm.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Config file change detected")

				// Reset timer to delay reload (avoid rapid successive reloads)
				reloadTimer.Reset(cm.reloadDelay)
			}

		case err, ok := <-cm.watcher.Errors:
			if !ok {
				return
			}
			cm.logger.Error().Err(err).Msg("File watcher error")

		case <-reloadTimer.C:
			// Check if file was actually modified
			if stat, err := os.Stat(cm.configPath); err == nil {
				if stat.ModTime().After(cm.lastModified) {
					cm.logger.Info().Msg("Reloading configuration due to file change")
					if err := cm.ReloadConfig(); err != nil {
						cm.logger.Error().Err(err).Msg("Failed to reload configuration")
					} else {
						cm.logger.Info().Msg("Configuration reloaded successfully")
					}
				}
			}
		}
	}
}
