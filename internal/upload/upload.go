// Package upload sends a resume PDF to the backend and starts a new interview
// session from the result.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/rs/zerolog"
)

// MaxFileSize is the largest accepted resume.
const MaxFileSize = 10 << 20

// PDFMime is the only accepted content type.
const PDFMime = "application/pdf"

// ErrInvalidFormat is returned for anything that is not a PDF.
var ErrInvalidFormat = errors.New("Invalid file format: Please upload a PDF file.")

// ErrTooLarge is returned for files above MaxFileSize.
var ErrTooLarge = fmt.Errorf("file is larger than %d MB", MaxFileSize>>20)

// API is the backend upload endpoint.
type API interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*types.UploadResult, error)
}

// Store is the part of the session an upload touches.
type Store interface {
	ClearInterview(ctx context.Context) error
	SetReference(ctx context.Context, ref string) error
	SetExtractedText(ctx context.Context, text string) error
}

// Service runs uploads.
type Service struct {
	api   API
	store Store
	log   zerolog.Logger
}

// NewService returns a Service.
func NewService(api API, store Store, log zerolog.Logger) *Service {
	return &Service{api: api, store: store, log: log}
}

// Begin clears the reference, extracted text and answer log left by an earlier run.
func (s *Service) Begin(ctx context.Context) error {
	if err := s.store.ClearInterview(ctx); err != nil {
		return fmt.Errorf("failed to clear previous session: %w", err)
	}
	return nil
}

// CheckFile reads path and verifies it is a PDF within the size limit.
func CheckFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrInvalidFormat
	}
	if info.Size() > MaxFileSize {
		return nil, ErrTooLarge
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !mimetype.Detect(data).Is(PDFMime) {
		return nil, ErrInvalidFormat
	}
	return data, nil
}

// Upload sends the PDF at path and stores the returned reference and extracted
// text. Nothing is stored when the upload fails.
func (s *Service) Upload(ctx context.Context, path string) (*types.UploadResult, error) {
	data, err := CheckFile(path)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	s.log.Info().Str("file", name).Int("bytes", len(data)).Msg("uploading resume")

	res, err := s.api.Upload(ctx, name, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if err := s.store.SetReference(ctx, res.URL); err != nil {
		return nil, fmt.Errorf("failed to store session reference: %w", err)
	}
	if err := s.store.SetExtractedText(ctx, res.ExtractedText); err != nil {
		return nil, fmt.Errorf("failed to store extracted text: %w", err)
	}
	s.log.Info().Str("reference", res.URL).Int("text_chars", len(res.ExtractedText)).Msg("resume analyzed")
	return res, nil
}
