package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigReadsYAML(t *testing.T) {
	t.Cleanup(func() { SetConfig(Config{}) })

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("DB_HOST: db.internal\nDB_NAME: bloodbank\nRATE_LIMIT_MAX: 50\nLOG_HUMAN: true\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	require.NoError(t, LoadConfig(path))

	assert.Equal(t, "db.internal", GetConfig("DB_HOST"))
	assert.Equal(t, "bloodbank", GetConfig("DB_NAME"))
	assert.Equal(t, 50, GetConfigInt("RATE_LIMIT_MAX", 0))
	assert.True(t, GetConfigBool("LOG_HUMAN"))
}

func TestGetConfigPrecedence(t *testing.T) {
	t.Cleanup(func() { SetConfig(Config{}) })
	SetConfig(Config{AppPort: "9000", AdminEmail: "ops@example.com"})

	assert.Equal(t, "9000", GetConfig("APP_PORT"))

	t.Setenv("APP_PORT", "9100")
	assert.Equal(t, "9100", GetConfig("APP_PORT"))

	assert.Equal(t, "ops@example.com", GetConfig("ADMIN_EMAIL"))
	SetConfig(Config{})
	assert.Equal(t, "admin@bloodbank.com", GetConfig("ADMIN_EMAIL"))
	assert.Equal(t, "", GetConfig("UNKNOWN_KEY"))
}

func TestLoadConfigMissingFileKeepsDefaults(t *testing.T) {
	t.Cleanup(func() { SetConfig(Config{}) })

	require.NoError(t, LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Equal(t, "8080", GetConfig("APP_PORT"))
	assert.Equal(t, 20, GetConfigInt("RATE_LIMIT_MAX", 0))
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DB_HOST: [unterminated"), 0o600))

	assert.Error(t, LoadConfig(path))
}
