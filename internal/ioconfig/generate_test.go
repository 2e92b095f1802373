package ioconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soweego-go/soweego/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDir(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configDir, err := GetConfigDir()
	require.NoError(t, err)

	expectedDir := filepath.Join(tempHome, ".config", "soweego")
	assert.Equal(t, expectedDir, configDir)
}

func TestGetDefaultConfigPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath, err := GetDefaultConfigPath()
	require.NoError(t, err)

	expectedPath := filepath.Join(tempHome, ".config", "soweego", "soweego.yaml")
	assert.Equal(t, expectedPath, configPath)
	assert.True(t, filepath.IsAbs(configPath))
}

func TestGenerateDefaultConfig(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		tempHome := t.TempDir()
		t.Setenv("HOME", tempHome)

		configPath, err := GenerateDefaultConfig()
		require.NoError(t, err)

		content, err := os.ReadFile(configPath)
		require.NoError(t, err)
		assert.Equal(t, templates.ConfigYAML, string(content))

		assert.NoError(t, ValidateGeneratedConfig(configPath))
	})

	t.Run("errors if file already exists", func(t *testing.T) {
		tempHome := t.TempDir()
		t.Setenv("HOME", tempHome)

		configPath, err := GetDefaultConfigPath()
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))
		require.NoError(t, os.WriteFile(configPath, []byte("existing"), 0o644))

		_, err = GenerateDefaultConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestConfigFileExists(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	exists, err := ConfigFileExists()
	require.NoError(t, err)
	assert.False(t, exists)

	configPath, err := GetDefaultConfigPath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))
	file, err := os.Create(configPath)
	require.NoError(t, err)
	file.Close()

	exists, err = ConfigFileExists()
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestValidateGeneratedConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "soweego.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(templates.ConfigYAML), 0o644))

		assert.NoError(t, ValidateGeneratedConfig(configPath))
	})

	t.Run("invalid config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "soweego.yaml")
		invalidYAML := "catalogdb: { port: not-a-number }"
		require.NoError(t, os.WriteFile(configPath, []byte(invalidYAML), 0o644))

		err := ValidateGeneratedConfig(configPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid YAML")
	})
}
