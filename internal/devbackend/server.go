// Package devbackend serves the interview backend contract in-process for local use and tests.
package devbackend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/interview-prep/internal/backend"
	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/devbackend/ratelimit"
	"github.com/rs/zerolog"
)

// TextExtractor pulls the text out of an uploaded PDF.
type TextExtractor interface {
	Extract(ctx context.Context, r io.Reader, uri string) (string, error)
}

// Config holds the dev backend dependencies. Nil Generator falls back to Canned.
type Config struct {
	Port      int
	Auth      *config.DevAuthConfig
	Generator Generator
	Extractor TextExtractor
	RateLimit *ratelimit.Config
	Log       zerolog.Logger
}

// Server is the dev backend.
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	users       *UserStore
	jwt         *JWTService
	generator   Generator
	extractor   TextExtractor
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
	log         zerolog.Logger

	mu      sync.RWMutex
	uploads map[string]*upload // by id
}

type upload struct {
	id       string
	filename string
	pdf      []byte
	text     string
}

// New creates a Server.
func New(cfg Config) (*Server, error) {
	if cfg.Auth == nil {
		return nil, errors.New("dev backend requires auth settings")
	}
	if cfg.Extractor == nil {
		return nil, errors.New("dev backend requires a PDF text extractor")
	}
	if cfg.Generator == nil {
		cfg.Generator = Canned{}
	}

	s := &Server{
		users:       NewUserStore(cfg.Auth),
		jwt:         NewJWTService(cfg.Auth),
		generator:   cfg.Generator,
		extractor:   cfg.Extractor,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		log:         cfg.Log,
		uploads:     make(map[string]*upload),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST "+backend.PathLogin, s.handleLogin)
	mux.HandleFunc("POST "+backend.PathSignup, s.handleSignup)
	mux.HandleFunc("POST "+backend.PathUpload, s.handleUpload)
	mux.HandleFunc("GET /uploads/{file}", s.handleUploadedFile)
	mux.HandleFunc("GET "+backend.PathScript, s.withAuth(s.handleScript))
	mux.HandleFunc("POST "+backend.PathMark, s.withAuth(s.handleMark))
	mux.HandleFunc("POST "+backend.PathTechQuestions, s.withAuth(s.handleTechQuestions))
	mux.HandleFunc("POST "+backend.PathLeetCode, s.withAuth(s.handleLeetCode))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.httpServer.Addr).Msg("dev backend starting")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down dev backend")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer s.rateLimiter.Stop()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info().Msg("dev backend stopped")
	return nil
}

// Close stops background work without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withCORS adds CORS headers for browser clients.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+backend.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their per-endpoint budget.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
		}
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with its request id.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(backend.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(backend.RequestIDHeader, requestID)

		reqLog := s.log.With().Str("request_id", requestID).Logger()
		r = r.WithContext(reqLog.WithContext(r.Context()))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		reqLog.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// withAuth rejects requests carrying an invalid bearer token. Requests without one pass.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next(w, r)
			return
		}
		const prefix = "Bearer "
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			s.errorResponse(w, http.StatusUnauthorized, "Authorization header must be a bearer token")
			return
		}
		if _, err := s.jwt.ValidateToken(header[len(prefix):]); err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes {"message": ...}, the shape the client lifts into its errors.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"message": message})
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}

	s.log.Warn().Int("limit", info.Limit).Dur("retry_after", info.RetryAfter).Msg("rate limit exceeded")
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// clientID is the remote IP.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
