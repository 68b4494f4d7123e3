// Package speech turns question text into audio with Murf and plays it back
// through an external player.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Murf API defaults.
const (
	DefaultMurfEndpoint = "https://api.murf.ai/v1/speech/generate"
	DefaultVoiceID      = "en-US-natalie"
)

// Pronunciation overrides how Murf speaks a word.
type Pronunciation struct {
	Pronunciation string `json:"pronunciation"`
	Type          string `json:"type"` // SAY_AS or IPA
}

// DefaultPronunciations is sent with every request.
var DefaultPronunciations = map[string]Pronunciation{
	"2010": {Pronunciation: "two thousand and ten", Type: "SAY_AS"},
	"live": {Pronunciation: "laɪv", Type: "IPA"},
}

type generateRequest struct {
	Text                    string                   `json:"text"`
	VoiceID                 string                   `json:"voiceId"`
	PronunciationDictionary map[string]Pronunciation `json:"pronunciationDictionary,omitempty"`
}

type generateResponse struct {
	AudioFile     string  `json:"audioFile"`
	AudioLength   float64 `json:"audioLengthInSeconds,omitempty"`
	ErrorMessage  string  `json:"errorMessage,omitempty"`
}

// MurfError is a failed speech generation call.
type MurfError struct {
	Status  int
	Message string
	Cause   error
}

func (e *MurfError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("murf: %s: %v", e.Message, e.Cause)
	case e.Status != 0:
		return fmt.Sprintf("murf: %s (status %d)", e.Message, e.Status)
	default:
		return "murf: " + e.Message
	}
}

func (e *MurfError) Unwrap() error {
	return e.Cause
}

// Murf is a client for the Murf text-to-speech API.
type Murf struct {
	apiKey         string
	voiceID        string
	endpoint       string
	pronunciations map[string]Pronunciation
	httpClient     *http.Client
	log            zerolog.Logger
}

// MurfOption configures a Murf client.
type MurfOption func(*Murf)

// WithVoice sets the voice id.
func WithVoice(id string) MurfOption {
	return func(m *Murf) {
		if id != "" {
			m.voiceID = id
		}
	}
}

// WithEndpoint overrides the generate URL.
func WithEndpoint(url string) MurfOption {
	return func(m *Murf) { m.endpoint = url }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) MurfOption {
	return func(m *Murf) { m.httpClient = c }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) MurfOption {
	return func(m *Murf) { m.log = log }
}

// NewMurf returns a client authenticating with apiKey.
func NewMurf(apiKey string, opts ...MurfOption) *Murf {
	m := &Murf{
		apiKey:         apiKey,
		voiceID:        DefaultVoiceID,
		endpoint:       DefaultMurfEndpoint,
		pronunciations: DefaultPronunciations,
		httpClient:     &http.Client{Timeout: 60 * time.Second},
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Generate synthesizes text and returns the URL of the audio file.
func (m *Murf) Generate(ctx context.Context, text string) (string, error) {
	if m.apiKey == "" {
		return "", &MurfError{Message: "no API key configured"}
	}

	body, err := json.Marshal(generateRequest{
		Text:                    text,
		VoiceID:                 m.voiceID,
		PronunciationDictionary: m.pronunciations,
	})
	if err != nil {
		return "", &MurfError{Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &MurfError{Message: "failed to build request", Cause: err}
	}
	req.Header.Set("api-key", m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", &MurfError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &MurfError{Status: resp.StatusCode, Message: "failed to read response", Cause: err}
	}

	m.log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Int("chars", len(text)).
		Msg("murf generate")

	var out generateResponse
	_ = json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := out.ErrorMessage
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &MurfError{Status: resp.StatusCode, Message: msg}
	}
	if out.AudioFile == "" {
		return "", &MurfError{Status: resp.StatusCode, Message: "response has no audioFile"}
	}
	return out.AudioFile, nil
}
