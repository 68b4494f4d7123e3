package speech

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ErrNoAudio is returned by transport controls before anything is loaded.
var ErrNoAudio = errors.New("no audio loaded")

// maxAudioBytes caps a downloaded audio file.
const maxAudioBytes = 50 << 20

// Player is the transport for one question's audio: play/pause, mute and a
// running clock. Muting keeps the clock running and silences the sink.
type Player struct {
	sink       Sink
	cacheDir   string
	httpClient *http.Client
	now        func() time.Time
	log        zerolog.Logger

	mu        sync.Mutex
	path      string
	duration  time.Duration
	stream    Stream
	playing   bool
	muted     bool
	offset    time.Duration // position when playback last paused
	startedAt time.Time     // wall clock when playback last resumed
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) PlayerOption {
	return func(p *Player) { p.now = now }
}

// WithDownloadClient sets the HTTP client used by Load.
func WithDownloadClient(c *http.Client) PlayerOption {
	return func(p *Player) { p.httpClient = c }
}

// WithPlayerLogger sets the logger.
func WithPlayerLogger(log zerolog.Logger) PlayerOption {
	return func(p *Player) { p.log = log }
}

// NewPlayer returns a Player caching downloads under cacheDir/audio.
func NewPlayer(sink Sink, cacheDir string, opts ...PlayerOption) *Player {
	if sink == nil {
		sink = SilentSink{}
	}
	p := &Player{
		sink:       sink,
		cacheDir:   cacheDir,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		now:        time.Now,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load downloads the audio at url into the cache and resets the transport.
// Anything previously playing is stopped.
func (p *Player) Load(ctx context.Context, url string) error {
	path, err := p.download(ctx, url)
	if err != nil {
		return err
	}
	return p.LoadFile(path)
}

// LoadFile resets the transport to a local WAV file.
func (p *Player) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read audio: %w", err)
	}
	dur, err := WAVDuration(bytes.NewReader(data))
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.path = path
	p.duration = dur
	p.offset = 0
	p.log.Debug().Str("path", path).Dur("duration", dur).Msg("audio loaded")
	return nil
}

// TogglePlay starts, pauses or resumes playback and reports whether it is now playing.
// Playing a finished clip starts it over.
func (p *Player) TogglePlay() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.path == "" {
		return false, ErrNoAudio
	}

	if p.playing && p.elapsedLocked() < p.duration {
		p.offset = p.elapsedLocked()
		p.playing = false
		if p.stream != nil && !p.muted {
			if err := p.stream.Pause(); err != nil {
				p.log.Warn().Err(err).Msg("pause failed")
			}
		}
		return false, nil
	}

	if p.elapsedLocked() >= p.duration {
		p.stopLocked()
		p.offset = 0
	}

	if p.stream == nil {
		st, err := p.sink.Open(p.path)
		if err != nil {
			return false, err
		}
		p.stream = st
		if p.muted {
			_ = st.Pause()
		}
	} else if !p.muted {
		if err := p.stream.Resume(); err != nil {
			p.log.Warn().Err(err).Msg("resume failed")
		}
	}
	p.playing = true
	p.startedAt = p.now()
	return true, nil
}

// ToggleMute flips the mute state and reports whether audio is now muted.
func (p *Player) ToggleMute() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.path == "" {
		return false, ErrNoAudio
	}
	p.muted = !p.muted
	if p.stream != nil && p.playing {
		var err error
		if p.muted {
			err = p.stream.Pause()
		} else {
			err = p.stream.Resume()
		}
		if err != nil {
			p.log.Warn().Err(err).Bool("muted", p.muted).Msg("mute toggle failed")
		}
	}
	return p.muted, nil
}

// Playing reports whether the clip is playing.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing && p.elapsedLocked() < p.duration
}

// Muted reports the mute state.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Elapsed returns the playback position.
func (p *Player) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.elapsedLocked()
}

// Duration returns the clip length.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// Status renders "elapsed / duration", e.g. "0:03 / 0:12".
func (p *Player) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return FormatTime(p.elapsedLocked().Seconds()) + " / " + FormatTime(p.duration.Seconds())
}

// Stop ends playback and rewinds.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.offset = 0
}

func (p *Player) elapsedLocked() time.Duration {
	pos := p.offset
	if p.playing {
		pos += p.now().Sub(p.startedAt)
	}
	return min(pos, p.duration)
}

func (p *Player) stopLocked() {
	if p.stream != nil {
		if err := p.stream.Close(); err != nil {
			p.log.Debug().Err(err).Msg("stream close")
		}
		p.stream = nil
	}
	p.playing = false
}

// AudioDir is where downloaded clips are stored.
func (p *Player) AudioDir() string {
	return filepath.Join(p.cacheDir, "audio")
}

func (p *Player) download(ctx context.Context, url string) (string, error) {
	sum := sha256.Sum256([]byte(url))
	path := filepath.Join(p.AudioDir(), hex.EncodeToString(sum[:12])+".wav")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build audio request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download audio: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download audio: status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create audio cache: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "dl-*.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	n, err := io.Copy(tmp, io.LimitReader(resp.Body, maxAudioBytes+1))
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && n > maxAudioBytes {
		err = fmt.Errorf("audio larger than %d bytes", maxAudioBytes)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save audio: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save audio: %w", err)
	}
	return path, nil
}

// FormatTime renders seconds as m:ss.
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
