// Package techq suggests practice problems for a job description.
package techq

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/interview-prep/internal/fetch"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultLimit is the number of questions requested when none is given.
const DefaultLimit = 5

// MsgMissingJD is shown when Find is called without a job description.
const MsgMissingJD = "Please paste a job description before generating questions."

// DefaultConcurrency bounds parallel problem page fetches in Describe.
const DefaultConcurrency = 4

// summaryChars caps the problem summary kept by Describe.
const summaryChars = 600

// maxJDFileSize caps a job description read from disk.
const maxJDFileSize = 5 << 20

// ValidationError is a problem with the input caught before any request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// API is the backend endpoint for technical questions.
type API interface {
	TechQuestions(ctx context.Context, jd string, limit int) ([]types.TechQuestion, error)
}

// PageFetcher returns the readable text of a page.
type PageFetcher interface {
	Text(ctx context.Context, url string) (*fetch.Page, error)
}

// PDFExtractor reads the text layer of a PDF.
type PDFExtractor interface {
	Extract(ctx context.Context, r io.Reader, uri string) (string, error)
}

// Service finds and describes practice questions.
type Service struct {
	api         API
	pages       PageFetcher
	pdf         PDFExtractor
	concurrency int
	log         zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPageFetcher enables job descriptions from URLs and Describe.
func WithPageFetcher(f PageFetcher) Option {
	return func(s *Service) { s.pages = f }
}

// WithPDFExtractor enables job descriptions from PDF files.
func WithPDFExtractor(x PDFExtractor) Option {
	return func(s *Service) { s.pdf = x }
}

// WithConcurrency sets how many problem pages Describe fetches at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService returns a Service backed by api.
func NewService(api API, opts ...Option) *Service {
	s := &Service{api: api, concurrency: DefaultConcurrency, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Find asks the backend for up to limit problems matching jd. A limit of zero
// or less uses DefaultLimit.
func (s *Service) Find(ctx context.Context, jd string, limit int) ([]types.TechQuestion, error) {
	jd = strings.TrimSpace(jd)
	if jd == "" {
		return nil, &ValidationError{Message: MsgMissingJD}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	qs, err := s.api.TechQuestions(ctx, jd, limit)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("jd_chars", len(jd)).Int("questions", len(qs)).Msg("technical questions found")
	return qs, nil
}

// DisplayName returns q's name, or "Question n" (1-based) when it has none.
func DisplayName(q types.TechQuestion, i int) string {
	if strings.TrimSpace(q.Name) != "" {
		return q.Name
	}
	return fmt.Sprintf("Question %d", i+1)
}

// JDFromFile reads a job description from a text or PDF file.
func (s *Service) JDFromFile(ctx context.Context, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.Size() > maxJDFileSize {
		return "", fmt.Errorf("%s is larger than %d MB", filepath.Base(path), maxJDFileSize>>20)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	mt := mimetype.Detect(data)
	switch {
	case mt.Is("application/pdf"):
		if s.pdf == nil {
			return "", fmt.Errorf("reading PDF job descriptions is not configured")
		}
		return s.pdf.Extract(ctx, bytes.NewReader(data), path)
	case strings.HasPrefix(mt.String(), "text/html"):
		return fetch.ExtractMainText(string(data), fetch.PlatformUnknown.ContentSelectors())
	case strings.HasPrefix(mt.String(), "text/") || utf8.Valid(data):
		return strings.TrimSpace(string(data)), nil
	default:
		return "", fmt.Errorf("unsupported job description file type %s", mt.String())
	}
}

// JDFromURL fetches a job posting and returns its main text.
func (s *Service) JDFromURL(ctx context.Context, url string) (string, error) {
	if s.pages == nil {
		return "", fmt.Errorf("fetching job descriptions from URLs is not configured")
	}
	page, err := s.pages.Text(ctx, url)
	if err != nil {
		return "", err
	}
	return page.Text, nil
}

// Description is a practice problem with the text of its linked page.
type Description struct {
	Question types.TechQuestion
	Title    string
	Summary  string
	Err      error
}

// Describe fetches the linked page of every question concurrently. Failures are
// recorded per question; results keep the input order.
func (s *Service) Describe(ctx context.Context, qs []types.TechQuestion) []Description {
	out := make([]Description, len(qs))
	if s.pages == nil {
		for i, q := range qs {
			out[i] = Description{Question: q, Err: fmt.Errorf("page fetching is not configured")}
		}
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, q := range qs {
		out[i].Question = q
		if q.Link == "" {
			out[i].Err = fmt.Errorf("no link")
			continue
		}
		g.Go(func() error {
			page, err := s.pages.Text(gctx, q.Link)
			if err != nil {
				s.log.Debug().Err(err).Str("url", q.Link).Msg("problem page fetch failed")
				out[i].Err = err
				return nil
			}
			out[i].Title = page.Title
			out[i].Summary = truncate(page.Text, summaryChars)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n])) + "…"
}
