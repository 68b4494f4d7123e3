// Package pdftext extracts plain text from PDF documents.
package pdftext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single extraction.
const DefaultTimeout = 30 * time.Second

// ErrNoText is returned for PDFs without an extractable text layer.
var ErrNoText = errors.New("PDF contains no extractable text")

// Extractor wraps the eino PDF parser.
type Extractor struct {
	parser  *pdf.PDFParser
	timeout time.Duration
	log     zerolog.Logger
}

// New returns an Extractor producing one continuous text per document.
func New(ctx context.Context, log zerolog.Logger) (*Extractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF parser: %w", err)
	}
	return &Extractor{parser: p, timeout: DefaultTimeout, log: log}, nil
}

// Extract reads the PDF from r. uri names the source in logs and metadata.
func (e *Extractor) Extract(ctx context.Context, r io.Reader, uri string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	docs, err := e.parser.Parse(ctx, r,
		einoParser.WithURI(uri),
		einoParser.WithExtraMeta(map[string]any{"source": uri}),
	)
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF %s: %w", uri, err)
	}

	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		if c := strings.TrimSpace(d.Content); c != "" {
			parts = append(parts, c)
		}
	}
	text := strings.Join(parts, "\n\n")

	e.log.Debug().
		Str("uri", uri).
		Int("documents", len(docs)).
		Int("chars", len(text)).
		Dur("duration", time.Since(start)).
		Msg("pdf text extracted")

	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
