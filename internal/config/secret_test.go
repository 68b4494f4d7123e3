package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionKey_ConfiguredSecret(t *testing.T) {
	cfg := Config{SessionSecret: "a-configured-secret-value"}

	key, err := cfg.SessionKey(filepath.Join(t.TempDir(), "session.key"))
	require.NoError(t, err)
	assert.Equal(t, "a-configured-secret-value", key)
}

func TestSessionKey_ShortSecret(t *testing.T) {
	cfg := Config{SessionSecret: "short"}

	_, err := cfg.SessionKey(filepath.Join(t.TempDir(), "session.key"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestSessionKey_GeneratedOnceAndReused(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "nested", "session.key")
	cfg := Config{}

	first, err := cfg.SessionKey(keyFile)
	require.NoError(t, err)
	assert.Len(t, first, 64)

	info, err := os.Stat(keyFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := cfg.SessionKey(keyFile)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
