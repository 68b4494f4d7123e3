// Package auth logs the user in and out and keeps the token in the session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/interview-prep/internal/backend"
	"github.com/jonathan/interview-prep/internal/session"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/rs/zerolog"
)

// Form messages.
const (
	MsgLoginMissing     = "Please provide both email and password."
	MsgSignupMissing    = "Please fill in all fields."
	MsgPasswordMismatch = "Passwords do not match."
	MsgPasswordShort    = "Password must be at least 4 characters long."
	MsgLoginFailed      = "Login failed"
	MsgSignupFailed     = "Signup failed"
)

// MinPasswordLength is the shortest accepted signup password.
const MinPasswordLength = 4

// ValidationError is a form problem caught before any request is sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// FailedError is a rejected login or signup.
type FailedError struct {
	Message string
	Cause   error
}

func (e *FailedError) Error() string {
	return e.Message
}

func (e *FailedError) Unwrap() error {
	return e.Cause
}

// API is the part of the backend client auth needs.
type API interface {
	Login(ctx context.Context, req types.LoginRequest) (*types.LoginResponse, error)
	Signup(ctx context.Context, req types.SignupRequest) (*types.SignupResponse, error)
}

// TokenStore persists the auth state.
type TokenStore interface {
	Token(ctx context.Context) (*session.StoredToken, error)
	SaveToken(ctx context.Context, tok session.StoredToken) error
	ClearToken(ctx context.Context) error
}

// Service implements login, signup, logout and status.
type Service struct {
	api   API
	store TokenStore
	ttl   time.Duration
	now   func() time.Time
	log   zerolog.Logger
}

// NewService returns a Service. ttl bounds how long a token saved without
// "remember me" stays usable.
func NewService(api API, store TokenStore, ttl time.Duration, log zerolog.Logger) *Service {
	return &Service{api: api, store: store, ttl: ttl, now: time.Now, log: log}
}

// Login authenticates and stores the returned token.
func (s *Service) Login(ctx context.Context, email, password string, remember bool) (*types.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &ValidationError{Message: MsgLoginMissing}
	}

	resp, err := s.api.Login(ctx, types.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, &FailedError{Message: failureMessage(err, MsgLoginFailed), Cause: err}
	}
	if resp.Token == "" {
		return nil, &FailedError{Message: MsgLoginFailed}
	}

	tok := session.StoredToken{
		Token:    resp.Token,
		Remember: remember,
		SavedAt:  s.now().UTC(),
		User:     resp.User,
	}
	if err := s.store.SaveToken(ctx, tok); err != nil {
		return nil, fmt.Errorf("failed to store auth token: %w", err)
	}

	s.log.Info().Str("email", email).Bool("remember", remember).Msg("logged in")
	return resp.User, nil
}

// Signup validates the form and creates the account. It does not log in.
func (s *Service) Signup(ctx context.Context, req types.SignupRequest, confirmPassword string) (*types.SignupResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	switch {
	case req.Name == "" || req.Email == "" || req.Password == "":
		return nil, &ValidationError{Message: MsgSignupMissing}
	case req.Password != confirmPassword:
		return nil, &ValidationError{Message: MsgPasswordMismatch}
	case len(req.Password) < MinPasswordLength:
		return nil, &ValidationError{Message: MsgPasswordShort}
	}

	resp, err := s.api.Signup(ctx, req)
	if err != nil {
		return nil, &FailedError{Message: failureMessage(err, MsgSignupFailed), Cause: err}
	}
	s.log.Info().Str("email", req.Email).Msg("account created")
	return resp, nil
}

// Logout forgets the stored token.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.ClearToken(ctx)
}

// failureMessage prefers the backend's message, then the error text, then fallback.
func failureMessage(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}

// Status describes the current login.
type Status struct {
	LoggedIn  bool
	User      *types.User
	Remember  bool
	SavedAt   time.Time
	ExpiresAt time.Time // earliest of the token's exp claim and the session TTL; zero when unbounded
	Expired   bool      // a token was stored but is no longer usable
}

// Status reports the login state. An expired token is removed from the store.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	st, _, err := s.status(ctx)
	return st, err
}

func (s *Service) status(ctx context.Context) (*Status, *session.StoredToken, error) {
	tok, err := s.store.Token(ctx)
	if err != nil {
		if errors.Is(err, session.ErrCorrupt) {
			s.log.Warn().Err(err).Msg("discarding unreadable auth token")
			_ = s.store.ClearToken(ctx)
			return &Status{Expired: true}, nil, nil
		}
		return nil, nil, err
	}
	if tok == nil {
		return &Status{}, nil, nil
	}

	st := &Status{User: tok.User, Remember: tok.Remember, SavedAt: tok.SavedAt}
	if exp, ok := tokenExpiry(tok.Token); ok {
		st.ExpiresAt = exp
	}
	if !tok.Remember && s.ttl > 0 {
		limit := tok.SavedAt.Add(s.ttl)
		if st.ExpiresAt.IsZero() || limit.Before(st.ExpiresAt) {
			st.ExpiresAt = limit
		}
	}

	if !st.ExpiresAt.IsZero() && !s.now().Before(st.ExpiresAt) {
		if err := s.store.ClearToken(ctx); err != nil {
			return nil, nil, err
		}
		return &Status{Expired: true, User: tok.User}, nil, nil
	}

	st.LoggedIn = true
	return st, tok, nil
}

// Token returns the usable bearer token, or "" when logged out. It has the
// shape of backend.TokenFunc.
func (s *Service) Token(ctx context.Context) string {
	st, tok, err := s.status(ctx)
	if err != nil || !st.LoggedIn {
		return ""
	}
	return tok.Token
}

// tokenExpiry reads the exp claim without verifying the signature.
func tokenExpiry(token string) (time.Time, bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
