// Package config provides credential settings for the reference backend.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// DevAuthConfig holds password hashing and token settings for the dev backend.
type DevAuthConfig struct {
	BcryptCost      int
	JWTSecret       string
	ExpirationHours int
}

// NewDevAuthConfig reads BCRYPT_COST (default 10), DEV_JWT_SECRET and
// DEV_JWT_EXPIRATION_HOURS (default 24). A missing secret is replaced by a
// random one, which invalidates issued tokens on restart.
func NewDevAuthConfig() (*DevAuthConfig, error) {
	cost, err := envInt("BCRYPT_COST", 10)
	if err != nil {
		return nil, err
	}
	hours, err := envInt("DEV_JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("DEV_JWT_SECRET")
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
	}

	cfg := &DevAuthConfig{
		BcryptCost:      cost,
		JWTSecret:       secret,
		ExpirationHours: hours,
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}

func (c *DevAuthConfig) normalize() error {
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be %d-14)", c.BcryptCost, bcrypt.MinCost)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("DEV_JWT_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("DEV_JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}

// HashPassword hashes a password with bcrypt.
func (c *DevAuthConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether pw matches storedHash.
func (c *DevAuthConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw)) == nil
}
