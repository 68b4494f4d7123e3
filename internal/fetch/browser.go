package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// MinContentLength is the shortest extracted text accepted from a plain HTTP
// fetch before falling back to the browser.
const MinContentLength = 500

// ShouldUseBrowser reports whether extractedText is short enough that the page
// was probably rendered by JavaScript.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// Browser renders pages in headless Chrome.
type Browser struct {
	ExecPath string // empty uses chromedp's lookup
	Timeout  time.Duration
	Settle   time.Duration // wait after body is ready for scripts to render
	Log      zerolog.Logger
}

// Render loads url and returns the rendered HTML.
func (b *Browser) Render(ctx context.Context, url string) (string, error) {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	settle := b.Settle
	if settle <= 0 {
		settle = 2 * time.Second
	}

	b.Log.Debug().Str("url", url).Msg("starting headless browser")

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(DefaultUserAgent),
	)
	if b.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	b.Log.Debug().Str("url", url).Int("bytes", len(html)).Msg("page rendered")
	return html, nil
}
