package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "formlens.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ModeReferenceImages, cfg.Processing.DefaultMode)
	assert.Equal(t, int64(50), cfg.Server.MaxUploadMB)
}

func TestLoadWithFileOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfigFile(t, `
log_level: debug
processing:
  default_mode: PDF_UPLOAD
  base_unit: pt
  render_dpi: 150
ocr:
  enabled: false
server:
  port: 9090
`)

	cfg, err := NewLoader().LoadWithFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ModePDFUpload, cfg.Processing.DefaultMode)
	assert.Equal(t, "pt", cfg.Processing.BaseUnit)
	assert.Equal(t, 150.0, cfg.Processing.RenderDPI)
	assert.False(t, cfg.OCR.Enabled)
	assert.Equal(t, 9090, cfg.Server.Port)

	// Untouched keys keep their defaults.
	assert.Equal(t, "eng", cfg.OCR.Language)
	assert.Equal(t, "localhost", cfg.Server.Host)
}

func TestLoadWithFileMissing(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	_, err := NewLoader().LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, err, "does not exist")
}

func TestLoadWithFileInvalidValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfigFile(t, "server:\n  port: 99999\n")

	_, err := NewLoader().LoadWithFile(path)
	require.ErrorContains(t, err, "validation failed")
}

func TestEnvironmentOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("FORMLENS_LOG_LEVEL", "warn")
	t.Setenv("FORMLENS_SERVER_PORT", "3000")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 3000, cfg.Server.Port)
}
