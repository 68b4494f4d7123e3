package speech

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMurf_Generate(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"audioFile":"https://cdn.example.com/a.wav","audioLengthInSeconds":3.2}`))
	}))
	defer srv.Close()

	m := NewMurf("secret", WithEndpoint(srv.URL))
	url, err := m.Generate(context.Background(), "Tell me about yourself.")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/a.wav", url)

	assert.Equal(t, "Tell me about yourself.", got.Text)
	assert.Equal(t, DefaultVoiceID, got.VoiceID)
	assert.Equal(t, "SAY_AS", got.PronunciationDictionary["2010"].Type)
	assert.Equal(t, "IPA", got.PronunciationDictionary["live"].Type)
}

func TestMurf_Generate_CustomVoice(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"audioFile":"x.wav"}`))
	}))
	defer srv.Close()

	_, err := NewMurf("k", WithEndpoint(srv.URL), WithVoice("en-UK-hazel")).Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "en-UK-hazel", got.VoiceID)
}

func TestMurf_Generate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"errorMessage":"Invalid api key"}`, "Invalid api key"},
		{"server error without body", http.StatusInternalServerError, ``, "Internal Server Error"},
		{"missing audio file", http.StatusOK, `{}`, "no audioFile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewMurf("k", WithEndpoint(srv.URL)).Generate(context.Background(), "hi")
			var me *MurfError
			require.True(t, errors.As(err, &me))
			assert.Contains(t, me.Error(), tt.wantMsg)
		})
	}
}

func TestMurf_Generate_NoKey(t *testing.T) {
	_, err := NewMurf("").Generate(context.Background(), "hi")
	assert.ErrorContains(t, err, "no API key")
}
