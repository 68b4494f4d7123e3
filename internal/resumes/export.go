package resumes

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/jonathan/interview-prep/internal/types"
)

// Rasterizer turns an HTML page into a PNG of its "#resume" element.
type Rasterizer interface {
	Rasterize(ctx context.Context, html []byte) ([]byte, error)
}

// ChromeRasterizer renders with headless Chrome at device scale 2.
type ChromeRasterizer struct {
	ExecPath string        // Chrome binary; empty means chromedp's lookup
	Timeout  time.Duration // whole render budget
	TempDir  string        // where the HTML page is written; empty means os.TempDir
}

// Rasterize implements Rasterizer.
func (r *ChromeRasterizer) Rasterize(ctx context.Context, html []byte) ([]byte, error) {
	f, err := os.CreateTemp(r.TempDir, "resume-*.html")
	if err != nil {
		return nil, &RenderError{Message: "failed to stage resume HTML", Cause: err}
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()
	if _, err := f.Write(html); err != nil {
		_ = f.Close()
		return nil, &RenderError{Message: "failed to stage resume HTML", Cause: err}
	}
	if err := f.Close(); err != nil {
		return nil, &RenderError{Message: "failed to stage resume HTML", Cause: err}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &RenderError{Message: "failed to resolve staged HTML", Cause: err}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var shot []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(794, 1123, chromedp.EmulateScale(2)),
		chromedp.Navigate("file://"+filepath.ToSlash(abs)),
		chromedp.WaitVisible("#resume", chromedp.ByID),
		chromedp.Screenshot("#resume", &shot, chromedp.ByID),
	)
	if err != nil {
		return nil, &RenderError{Message: "browser rendering failed", Cause: err}
	}
	return shot, nil
}

// Exporter produces multi-page PDFs from resume documents.
type Exporter struct {
	Rasterizer Rasterizer
}

// Export renders doc to HTML, rasterizes it, splits the raster into A4 pages by
// fixed height and writes the PDF to w.
func (e *Exporter) Export(ctx context.Context, doc *types.ResumeDocument, w io.Writer) error {
	html, err := RenderHTML(doc)
	if err != nil {
		return err
	}

	shot, err := e.Rasterizer.Rasterize(ctx, html)
	if err != nil {
		return err
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return &RenderError{Message: "failed to decode rendered resume", Cause: err}
	}

	return WritePDF(w, SplitPages(img, A4WidthMM, A4HeightMM))
}

// ExportToFile writes the PDF for doc into dir using ExportFileName and returns the path.
func (e *Exporter) ExportToFile(ctx context.Context, doc *types.ResumeDocument, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, ExportFileName(doc.Name))

	var buf bytes.Buffer
	if err := e.Export(ctx, doc, &buf); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9]`)

// ExportFileName returns "<name>_resume.pdf" with the name lowercased and every
// character outside [a-z0-9] replaced by an underscore.
func ExportFileName(name string) string {
	return unsafeFileChars.ReplaceAllString(strings.ToLower(name), "_") + "_resume.pdf"
}
