package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDevAuthConfig_Defaults(t *testing.T) {
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("DEV_JWT_SECRET", "")
	t.Setenv("DEV_JWT_EXPIRATION_HOURS", "")

	cfg, err := NewDevAuthConfig()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 24, cfg.ExpirationHours)
	assert.Len(t, cfg.JWTSecret, 64)
}

func TestNewDevAuthConfig_FromEnv(t *testing.T) {
	t.Setenv("BCRYPT_COST", "11")
	t.Setenv("DEV_JWT_SECRET", "fixed-secret")
	t.Setenv("DEV_JWT_EXPIRATION_HOURS", "2")

	cfg, err := NewDevAuthConfig()
	require.NoError(t, err)

	assert.Equal(t, 11, cfg.BcryptCost)
	assert.Equal(t, "fixed-secret", cfg.JWTSecret)
	assert.Equal(t, 2, cfg.ExpirationHours)
}

func TestNewDevAuthConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-numeric cost", key: "BCRYPT_COST", value: "abc"},
		{name: "cost too high", key: "BCRYPT_COST", value: "20"},
		{name: "zero expiration", key: "DEV_JWT_EXPIRATION_HOURS", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BCRYPT_COST", "")
			t.Setenv("DEV_JWT_EXPIRATION_HOURS", "")
			t.Setenv(tt.key, tt.value)

			_, err := NewDevAuthConfig()
			assert.Error(t, err)
		})
	}
}

func TestDevAuthConfig_HashAndVerify(t *testing.T) {
	cfg := &DevAuthConfig{BcryptCost: 10, JWTSecret: "s", ExpirationHours: 1}

	hash, err := cfg.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, cfg.VerifyPassword("hunter22", hash))
	assert.False(t, cfg.VerifyPassword("wrong", hash))
}
