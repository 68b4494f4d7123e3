package devbackend

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/types"
)

type userRecord struct {
	id   uuid.UUID
	hash string
	user types.User
}

// UserStore keeps accounts in memory.
type UserStore struct {
	mu     sync.RWMutex
	users  map[string]*userRecord // by lowercased email
	hasher *config.DevAuthConfig
}

// NewUserStore creates an empty store hashing passwords with cfg.
func NewUserStore(cfg *config.DevAuthConfig) *UserStore {
	return &UserStore{users: make(map[string]*userRecord), hasher: cfg}
}

// Register creates an account.
func (s *UserStore) Register(req types.SignupRequest) (*types.User, error) {
	key := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := s.hasher.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[key]; ok {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	id := uuid.New()
	rec := &userRecord{
		id:   id,
		hash: hash,
		user: types.User{
			ID:            id.String(),
			Name:          strings.TrimSpace(req.Name),
			Email:         key,
			LinkedinUname: req.LinkedinUname,
			LeetcodeUname: req.LeetcodeUname,
			Skills:        req.Skills,
			Bio:           req.Bio,
		},
	}
	s.users[key] = rec
	u := rec.user
	return &u, nil
}

// Authenticate checks an email and password.
func (s *UserStore) Authenticate(email, password string) (uuid.UUID, *types.User, error) {
	s.mu.RLock()
	rec, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	s.mu.RUnlock()

	if !ok || !s.hasher.VerifyPassword(password, rec.hash) {
		return uuid.Nil, nil, &ErrInvalidCredentials{}
	}
	u := rec.user
	return rec.id, &u, nil
}
