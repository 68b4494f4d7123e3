package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// DefaultCacheTTL is how long a cached page stays fresh.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Renderer renders a page with a browser.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// Fetcher fetches pages, extracts their text with the platform's selectors,
// falls back to a Renderer for script-rendered pages and caches the text on disk.
type Fetcher struct {
	options  *Options
	renderer Renderer
	cacheDir string
	cacheTTL time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// Config holds the Fetcher settings. Zero values disable the cache and the browser fallback.
type Config struct {
	Options  *Options
	Renderer Renderer
	CacheDir string
	CacheTTL time.Duration
	Log      zerolog.Logger
}

// NewFetcher creates a Fetcher.
func NewFetcher(cfg Config) *Fetcher {
	if cfg.Options == nil {
		cfg.Options = DefaultOptions()
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return &Fetcher{
		options:  cfg.Options,
		renderer: cfg.Renderer,
		cacheDir: cfg.CacheDir,
		cacheTTL: cfg.CacheTTL,
		now:      time.Now,
		log:      cfg.Log,
	}
}

// Page is the cached form of a fetched page.
type Page struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Platform  Platform  `json:"platform"`
	Rendered  bool      `json:"rendered"`
	FetchedAt time.Time `json:"fetchedAt"`
	FromCache bool      `json:"-"`
}

// Text fetches urlStr and returns its main text.
func (f *Fetcher) Text(ctx context.Context, urlStr string) (*Page, error) {
	if err := ValidateURL(urlStr); err != nil {
		return nil, err
	}
	if p := f.cached(urlStr); p != nil {
		return p, nil
	}

	platform := DetectPlatform(urlStr)
	page := &Page{URL: urlStr, Platform: platform, FetchedAt: f.now().UTC()}

	res, fetchErr := URL(ctx, urlStr, f.options)
	if res != nil && fetchErr == nil {
		page.Title = Title(res.HTML)
		page.Text, _ = ExtractMainText(res.HTML, platform.ContentSelectors(), platform.NoiseSelectors()...)
	}

	if f.renderer != nil && (fetchErr != nil || ShouldUseBrowser(page.Text)) {
		f.log.Debug().Str("url", urlStr).Int("chars", len(page.Text)).Msg("falling back to browser")
		html, err := f.renderer.Render(ctx, urlStr)
		if err == nil {
			text, _ := ExtractMainText(html, platform.ContentSelectors(), platform.NoiseSelectors()...)
			if len(text) > len(page.Text) {
				page.Text = text
				page.Title = Title(html)
				page.Rendered = true
				fetchErr = nil
			}
		} else {
			f.log.Warn().Err(err).Str("url", urlStr).Msg("browser fallback failed")
		}
	}

	if fetchErr != nil && page.Text == "" {
		return nil, fetchErr
	}
	if page.Text == "" {
		return nil, &Error{URL: urlStr, Message: "page has no readable text"}
	}

	f.store(page)
	return page, nil
}

// Invalidate drops the cached copy of urlStr.
func (f *Fetcher) Invalidate(urlStr string) error {
	if f.cacheDir == "" {
		return nil
	}
	err := os.Remove(f.cachePath(urlStr))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (f *Fetcher) cachePath(urlStr string) string {
	sum := sha256.Sum256([]byte(urlStr))
	return filepath.Join(f.cacheDir, "pages", hex.EncodeToString(sum[:16])+".json")
}

func (f *Fetcher) cached(urlStr string) *Page {
	if f.cacheDir == "" {
		return nil
	}
	data, err := os.ReadFile(f.cachePath(urlStr))
	if err != nil {
		return nil
	}
	var p Page
	if err := json.Unmarshal(data, &p); err != nil || p.URL != urlStr {
		return nil
	}
	if f.now().Sub(p.FetchedAt) > f.cacheTTL {
		return nil
	}
	p.FromCache = true
	return &p
}

func (f *Fetcher) store(p *Page) {
	if f.cacheDir == "" {
		return
	}
	path := f.cachePath(p.URL)
	data, err := json.Marshal(p)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o755)
	}
	if err == nil {
		err = os.WriteFile(path, data, 0o644)
	}
	if err != nil {
		f.log.Warn().Err(err).Str("url", p.URL).Msg("failed to cache page")
	}
}
