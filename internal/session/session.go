package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonathan/interview-prep/internal/schemas"
	"github.com/jonathan/interview-prep/internal/types"
)

// Keys of the session schema.
const (
	KeyReference     = "url"           // string: backend reference of the uploaded resume
	KeyExtractedText = "extractedText" // string: text extracted from the uploaded resume
	KeyAnswers       = "qaData"        // []types.AnsweredItem: append-only answer log
	KeyResumes       = "resumes"       // []types.ResumeDocument: newest first
	KeyProfile       = "profile"       // types.UserProfile
	KeyToken         = "auth_token"    // string: sealed StoredToken
)

// Keys lists every key of the session schema.
var Keys = []string{KeyReference, KeyExtractedText, KeyAnswers, KeyResumes, KeyProfile, KeyToken}

// StoredToken is the auth state kept between runs.
type StoredToken struct {
	Token    string      `json:"token"`
	Remember bool        `json:"remember"`
	SavedAt  time.Time   `json:"savedAt"`
	User     *types.User `json:"user,omitempty"`
}

// Session is the typed view over a Store. It is the only way components read or
// write shared state.
type Session struct {
	store  Store
	sealer *Sealer
	mu     sync.Mutex
}

// New wraps store. sealer may be nil when the token is never touched.
func New(store Store, sealer *Sealer) *Session {
	return &Session{store: store, sealer: sealer}
}

// Close closes the underlying store.
func (s *Session) Close() error {
	return s.store.Close()
}

// Reference returns the uploaded resume reference, or "" when none is set.
func (s *Session) Reference(ctx context.Context) (string, error) {
	return s.getString(ctx, KeyReference)
}

// SetReference stores the uploaded resume reference.
func (s *Session) SetReference(ctx context.Context, ref string) error {
	return s.setJSON(ctx, KeyReference, ref)
}

// ExtractedText returns the text extracted from the uploaded resume.
func (s *Session) ExtractedText(ctx context.Context) (string, error) {
	return s.getString(ctx, KeyExtractedText)
}

// SetExtractedText stores the extracted resume text.
func (s *Session) SetExtractedText(ctx context.Context, text string) error {
	return s.setJSON(ctx, KeyExtractedText, text)
}

// Answers returns the answer log. A missing log is empty; a malformed one is a CorruptError.
func (s *Session) Answers(ctx context.Context) ([]types.AnsweredItem, error) {
	raw, err := s.store.Get(ctx, KeyAnswers)
	if errors.Is(err, ErrNotFound) {
		return []types.AnsweredItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	if err := schemas.Validate(schemas.AnswerLog, raw); err != nil {
		return nil, &CorruptError{Key: KeyAnswers, Cause: err}
	}
	var items []types.AnsweredItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &CorruptError{Key: KeyAnswers, Cause: err}
	}
	return items, nil
}

// AppendAnswer appends one entry to the answer log.
func (s *Session) AppendAnswer(ctx context.Context, item types.AnsweredItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.Answers(ctx)
	if err != nil {
		return err
	}
	items = append(items, item)
	return s.setJSON(ctx, KeyAnswers, items)
}

// ResetAnswers replaces the answer log with an empty one.
func (s *Session) ResetAnswers(ctx context.Context) error {
	return s.setJSON(ctx, KeyAnswers, []types.AnsweredItem{})
}

// ClearInterview drops the reference, extracted text and answer log.
func (s *Session) ClearInterview(ctx context.Context) error {
	return s.store.Delete(ctx, KeyReference, KeyExtractedText, KeyAnswers)
}

// Resumes returns saved resumes, newest first.
func (s *Session) Resumes(ctx context.Context) ([]types.ResumeDocument, error) {
	raw, err := s.store.Get(ctx, KeyResumes)
	if errors.Is(err, ErrNotFound) {
		return []types.ResumeDocument{}, nil
	}
	if err != nil {
		return nil, err
	}
	if err := schemas.Validate(schemas.ResumeList, raw); err != nil {
		return nil, &CorruptError{Key: KeyResumes, Cause: err}
	}
	var docs []types.ResumeDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, &CorruptError{Key: KeyResumes, Cause: err}
	}
	return docs, nil
}

// SaveResumes replaces the saved resume list.
func (s *Session) SaveResumes(ctx context.Context, docs []types.ResumeDocument) error {
	if docs == nil {
		docs = []types.ResumeDocument{}
	}
	return s.setJSON(ctx, KeyResumes, docs)
}

// UpdateResumes runs fn on the saved list under the session lock and stores the result.
func (s *Session) UpdateResumes(ctx context.Context, fn func([]types.ResumeDocument) ([]types.ResumeDocument, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.Resumes(ctx)
	if err != nil {
		return err
	}
	next, err := fn(docs)
	if err != nil {
		return err
	}
	return s.SaveResumes(ctx, next)
}

// Profile returns the stored profile, or an empty one.
func (s *Session) Profile(ctx context.Context) (*types.UserProfile, error) {
	raw, err := s.store.Get(ctx, KeyProfile)
	if errors.Is(err, ErrNotFound) {
		return &types.UserProfile{}, nil
	}
	if err != nil {
		return nil, err
	}
	var p types.UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &CorruptError{Key: KeyProfile, Cause: err}
	}
	return &p, nil
}

// SaveProfile stores the profile.
func (s *Session) SaveProfile(ctx context.Context, p *types.UserProfile) error {
	return s.setJSON(ctx, KeyProfile, p)
}

// Token returns the stored auth state, or nil when logged out.
func (s *Session) Token(ctx context.Context) (*StoredToken, error) {
	sealed, err := s.getString(ctx, KeyToken)
	if err != nil || sealed == "" {
		return nil, err
	}
	if s.sealer == nil {
		return nil, ErrNoKey
	}
	plain, err := s.sealer.Open(sealed)
	if err != nil {
		return nil, &CorruptError{Key: KeyToken, Cause: err}
	}
	var tok StoredToken
	if err := json.Unmarshal(plain, &tok); err != nil {
		return nil, &CorruptError{Key: KeyToken, Cause: err}
	}
	return &tok, nil
}

// SaveToken seals and stores the auth state.
func (s *Session) SaveToken(ctx context.Context, tok StoredToken) error {
	if s.sealer == nil {
		return ErrNoKey
	}
	plain, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	sealed, err := s.sealer.Seal(plain)
	if err != nil {
		return err
	}
	return s.setJSON(ctx, KeyToken, sealed)
}

// ClearToken removes the auth state.
func (s *Session) ClearToken(ctx context.Context) error {
	return s.store.Delete(ctx, KeyToken)
}

// Clear removes every key of the session schema.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.Delete(ctx, Keys...)
}

// KeyInfo describes one stored key for display.
type KeyInfo struct {
	Key     string
	Present bool
	Bytes   int
}

// Describe reports which keys hold values.
func (s *Session) Describe(ctx context.Context) ([]KeyInfo, error) {
	out := make([]KeyInfo, 0, len(Keys))
	for _, k := range Keys {
		raw, err := s.store.Get(ctx, k)
		switch {
		case errors.Is(err, ErrNotFound):
			out = append(out, KeyInfo{Key: k})
		case err != nil:
			return nil, err
		default:
			out = append(out, KeyInfo{Key: k, Present: true, Bytes: len(raw)})
		}
	}
	return out, nil
}

func (s *Session) getString(ctx context.Context, key string) (string, error) {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", &CorruptError{Key: key, Cause: err}
	}
	return v, nil
}

func (s *Session) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return s.store.Set(ctx, key, data)
}
