// Package config provides session secret resolution.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MinSecretLength is the minimum accepted length of a configured session secret.
const MinSecretLength = 16

// SessionKey returns the secret used to seal the stored auth token.
// A configured secret wins. Otherwise a random key is created once in keyFile
// with owner-only permissions and reused afterwards.
func (c *Config) SessionKey(keyFile string) (string, error) {
	if c.SessionSecret != "" {
		if len(c.SessionSecret) < MinSecretLength {
			return "", fmt.Errorf("session secret too short: %d (must be at least %d characters)", len(c.SessionSecret), MinSecretLength)
		}
		return c.SessionSecret, nil
	}

	data, err := os.ReadFile(keyFile)
	if err == nil {
		key := strings.TrimSpace(string(data))
		if len(key) >= MinSecretLength {
			return key, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to read session key %s: %w", keyFile, err)
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session key: %w", err)
	}
	key := hex.EncodeToString(buf)

	if err := os.MkdirAll(filepath.Dir(keyFile), 0o700); err != nil {
		return "", fmt.Errorf("failed to create key directory: %w", err)
	}
	if err := os.WriteFile(keyFile, []byte(key+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("failed to write session key: %w", err)
	}
	return key, nil
}
