// Package backend is the HTTP client for the interview-prep REST API.
// Every response body is checked against an embedded JSON schema before it is decoded.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/interview-prep/internal/schemas"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/rs/zerolog"
)

// Endpoint paths. They are part of the backend contract.
const (
	PathLogin         = "/user/login"
	PathSignup        = "/user/add"
	PathUpload        = "/api/upload/"
	PathScript        = "/api/get"
	PathMark          = "/api/mark"
	PathTechQuestions = "/api/getTQ"
	PathLeetCode      = "/leetcode/getUser"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 << 20

// TokenFunc returns the bearer token to send, or "" for none.
type TokenFunc func(ctx context.Context) string

// Client talks to the backend.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	token   TokenFunc
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithToken sets the bearer token source.
func WithToken(fn TokenFunc) Option {
	return func(c *Client) { c.token = fn }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend URL %q", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 60 * time.Second},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured backend URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, req types.LoginRequest) (*types.LoginResponse, error) {
	var out types.LoginResponse
	if err := c.postJSON(ctx, PathLogin, req, schemas.LoginResponse, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup creates an account.
func (c *Client) Signup(ctx context.Context, req types.SignupRequest) (*types.SignupResponse, error) {
	var out types.SignupResponse
	if err := c.postJSON(ctx, PathSignup, req, schemas.SignupResponse, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload sends a resume PDF as multipart field "file".
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (*types.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	var out types.UploadResult
	if err := c.do(ctx, http.MethodPost, PathUpload, nil, &buf, mw.FormDataContentType(), schemas.UploadResponse, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Script fetches the interview script for an uploaded resume reference.
func (c *Client) Script(ctx context.Context, reference string) (*types.InterviewScript, error) {
	var out types.ScriptEnvelope
	query := url.Values{"url": {reference}}
	if err := c.do(ctx, http.MethodGet, PathScript, query, nil, "", schemas.ScriptResponse, &out); err != nil {
		return nil, err
	}
	return &out.Question.InterviewScript, nil
}

// Mark scores an answer to a question.
func (c *Client) Mark(ctx context.Context, question, answer string) (*types.MarkResult, error) {
	var out types.MarkEnvelope
	req := types.MarkRequest{Question: question, Answer: answer}
	if err := c.postJSON(ctx, PathMark, req, schemas.MarkResponse, &out); err != nil {
		return nil, err
	}
	return &out.Result, nil
}

// TechQuestions suggests practice problems for a job description.
func (c *Client) TechQuestions(ctx context.Context, jd string, limit int) ([]types.TechQuestion, error) {
	var out []types.TechQuestion
	req := types.TechQuestionsRequest{JD: jd, Limit: limit}
	if err := c.postJSON(ctx, PathTechQuestions, req, schemas.TechQuestionsResponse, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LeetCode fetches public LeetCode statistics for a username.
func (c *Client) LeetCode(ctx context.Context, username string) (*types.LeetCodeProfile, error) {
	var out types.LeetCodeProfile
	req := types.LeetCodeRequest{Username: username}
	if err := c.postJSON(ctx, PathLeetCode, req, schemas.LeetCodeResponse, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in any, schema schemas.Name, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", path, err)
	}
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(body), "application/json", schema, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, schema schemas.Name, out any) error {
	endpoint := method + " " + path

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Cause: err}
	}
	requestID := uuid.New().String()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != nil {
		if tok := c.token(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("endpoint", endpoint).Str("request_id", requestID).Err(err).Msg("backend request failed")
		return &TransportError{Endpoint: endpoint, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Endpoint: endpoint, Cause: err}
	}

	c.log.Debug().
		Str("endpoint", endpoint).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Endpoint: endpoint, Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	if err := schemas.Validate(schema, raw); err != nil {
		return &SchemaError{Endpoint: endpoint, Cause: err}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &SchemaError{Endpoint: endpoint, Cause: err}
	}
	return nil
}

// errorMessage lifts a human readable message out of an error body.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}

	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, "<") {
		return ""
	}
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}
