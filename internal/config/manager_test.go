package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigManager_LoadAndGet(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configData := `
ookla_config:
  country: Korea
`
	err := os.WriteFile(configFile, []byte(configData), 0644)
	require.NoError(t, err)

	cm, err := NewConfigManager(configFile, DefaultConfigManagerOptions())
	require.NoError(t, err)
	defer cm.Close()

	cfg := cm.GetConfig()
	assert.Equal(t, "Korea", cfg.OoklaConfig.Country)
	assert.Equal(t, configFile, cm.GetConfigPath())
	assert.False(t, cm.IsHotReloadEnabled())
}

func TestConfigManager_GetConfigReturnsCopy(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("{}"), 0644))

	cm, err := NewConfigManager(configFile, DefaultConfigManagerOptions())
	require.NoError(t, err)
	defer cm.Close()

	first := cm.GetConfig()
	first.OoklaConfig.Country = "mutated"

	second := cm.GetConfig()
	assert.Equal(t, DefaultOoklaCountry, second.OoklaConfig.Country)
}

func TestConfigManager_ValidationFailure(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configData := `
ookla_config:
  format: xml
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	_, err := NewConfigManager(configFile, DefaultConfigManagerOptions())
	assert.Error(t, err)
}

func TestConfigManager_Reload(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("ookla_config:\n  country: Japan\n"), 0644))

	cm, err := NewConfigManager(configFile, DefaultConfigManagerOptions())
	require.NoError(t, err)
	defer cm.Close()

	require.NoError(t, os.WriteFile(configFile, []byte("ookla_config:\n  country: France\n"), 0644))
	require.NoError(t, cm.ReloadConfig())

	assert.Equal(t, "France", cm.GetConfig().OoklaConfig.Country)
}

func TestConfigManager_OverridesSurviveReload(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("ookla_config:\n  output_dir: from-file\n"), 0644))

	opts := DefaultConfigManagerOptions()
	opts.Overrides = func(cfg *GlobalConfig) {
		cfg.OoklaConfig.OutputDir = "from-flag"
		cfg.EC2Config.OutputDir = "from-flag"
	}

	cm, err := NewConfigManager(configFile, opts)
	require.NoError(t, err)
	defer cm.Close()

	assert.Equal(t, "from-flag", cm.GetConfig().OoklaConfig.OutputDir)

	require.NoError(t, os.WriteFile(configFile, []byte("ookla_config:\n  output_dir: rewritten\n"), 0644))
	require.NoError(t, cm.ReloadConfig())

	cfg := cm.GetConfig()
	assert.Equal(t, "from-flag", cfg.OoklaConfig.OutputDir)
	assert.Equal(t, "from-flag", cfg.EC2Config.OutputDir)
}
