package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	saltLen  = 16
	nonceLen = 24

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// ErrUnseal is returned when a sealed value was tampered with or sealed under another secret.
var ErrUnseal = errors.New("sealed value cannot be opened")

// Sealer encrypts small values with NaCl secretbox under a key derived from a secret with scrypt.
// Output layout is base64(salt | nonce | box).
type Sealer struct {
	secret []byte
}

// NewSealer returns a Sealer for secret.
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, ErrNoKey
	}
	return &Sealer{secret: []byte(secret)}, nil
}

// Seal encrypts plaintext.
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	var salt [saltLen]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return "", fmt.Errorf("failed to read salt: %w", err)
	}
	var nonce [nonceLen]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("failed to read nonce: %w", err)
	}

	key, err := s.deriveKey(salt[:])
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, saltLen+nonceLen+len(plaintext)+secretbox.Overhead)
	out = append(out, salt[:]...)
	out = append(out, nonce[:]...)
	out = secretbox.Seal(out, plaintext, &nonce, key)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open decrypts a value produced by Seal.
func (s *Sealer) Open(sealed string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnseal, err)
	}
	if len(raw) < saltLen+nonceLen+secretbox.Overhead {
		return nil, fmt.Errorf("%w: value too short", ErrUnseal)
	}

	salt := raw[:saltLen]
	var nonce [nonceLen]byte
	copy(nonce[:], raw[saltLen:saltLen+nonceLen])

	key, err := s.deriveKey(salt)
	if err != nil {
		return nil, err
	}

	plain, ok := secretbox.Open(nil, raw[saltLen+nonceLen:], &nonce, key)
	if !ok {
		return nil, ErrUnseal
	}
	return plain, nil
}

func (s *Sealer) deriveKey(salt []byte) (*[32]byte, error) {
	dk, err := scrypt.Key(s.secret, salt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	var key [32]byte
	copy(key[:], dk)
	return &key, nil
}
