package session

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealer_RoundTrip(t *testing.T) {
	s, err := NewSealer("a-long-enough-secret")
	require.NoError(t, err)

	sealed, err := s.Seal([]byte("hello"))
	require.NoError(t, err)

	again, err := s.Seal([]byte("hello"))
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "salt and nonce are random")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(plain))
}

func TestSealer_Tampered(t *testing.T) {
	s, err := NewSealer("a-long-enough-secret")
	require.NoError(t, err)

	sealed, err := s.Seal([]byte("hello"))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff

	_, err = s.Open(base64.StdEncoding.EncodeToString(raw))
	assert.ErrorIs(t, err, ErrUnseal)

	_, err = s.Open("!!not-base64!!")
	assert.ErrorIs(t, err, ErrUnseal)

	_, err = s.Open(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.ErrorIs(t, err, ErrUnseal)
}

func TestNewSealer_EmptySecret(t *testing.T) {
	_, err := NewSealer("")
	assert.ErrorIs(t, err, ErrNoKey)
}
