// Package profile shows and edits the locally stored user profile and looks up
// LeetCode statistics.
package profile

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/interview-prep/internal/types"
)

// ErrNoUsername is returned by LeetCode when neither the argument nor the
// profile names a LeetCode account.
var ErrNoUsername = errors.New("no LeetCode username given and none saved in the profile")

var fieldMessages = map[string]string{
	"name":  "Name is required",
	"email": "Please enter a valid email address",
}

// ValidationError lists invalid profile fields.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range []string{"name", "email"} {
		if m, ok := e.Fields[f]; ok {
			msgs = append(msgs, m)
		}
	}
	return "invalid profile: " + strings.Join(msgs, "; ")
}

// Store persists the profile.
type Store interface {
	Profile(ctx context.Context) (*types.UserProfile, error)
	SaveProfile(ctx context.Context, p *types.UserProfile) error
}

// LeetCodeAPI looks up a LeetCode user.
type LeetCodeAPI interface {
	LeetCode(ctx context.Context, username string) (*types.LeetCodeProfile, error)
}

// Service reads and writes the profile.
type Service struct {
	store    Store
	api      LeetCodeAPI
	validate *validator.Validate
}

// NewService returns a Service. api may be nil when LeetCode lookups are not needed.
func NewService(store Store, api LeetCodeAPI) *Service {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return &Service{store: store, api: api, validate: v}
}

// Show returns the stored profile; an unset profile is empty.
func (s *Service) Show(ctx context.Context) (*types.UserProfile, error) {
	return s.store.Profile(ctx)
}

// Edit validates p and replaces the stored profile with it.
func (s *Service) Edit(ctx context.Context, p types.UserProfile) (*types.UserProfile, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Skills = strings.TrimSpace(p.Skills)
	p.Bio = strings.TrimSpace(p.Bio)
	p.LinkedinUname = strings.TrimSpace(p.LinkedinUname)
	p.LeetcodeUname = strings.TrimSpace(p.LeetcodeUname)

	if err := s.validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		out := &ValidationError{Fields: make(map[string]string)}
		for _, fe := range verrs {
			msg, ok := fieldMessages[fe.Field()]
			if !ok {
				msg = fmt.Sprintf("%s is invalid", fe.Field())
			}
			out.Fields[fe.Field()] = msg
		}
		return nil, out
	}

	if err := s.store.SaveProfile(ctx, &p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return &p, nil
}

// SeedFromUser fills an empty stored profile from the account returned at login.
// A profile that already has a name is left alone.
func (s *Service) SeedFromUser(ctx context.Context, u *types.User) error {
	if u == nil {
		return nil
	}
	cur, err := s.store.Profile(ctx)
	if err != nil {
		return err
	}
	if cur.Name != "" {
		return nil
	}
	return s.store.SaveProfile(ctx, &types.UserProfile{
		Name:          u.Name,
		Email:         u.Email,
		Skills:        u.Skills,
		Bio:           u.Bio,
		LinkedinUname: u.LinkedinUname,
		LeetcodeUname: u.LeetcodeUname,
	})
}

// LeetCode fetches solve statistics for username, or for the profile's
// LeetCode username when username is blank.
func (s *Service) LeetCode(ctx context.Context, username string) (*types.LeetCodeProfile, error) {
	if s.api == nil {
		return nil, errors.New("LeetCode lookups are not configured")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		p, err := s.store.Profile(ctx)
		if err != nil {
			return nil, err
		}
		username = p.LeetcodeUname
	}
	if username == "" {
		return nil, ErrNoUsername
	}
	return s.api.LeetCode(ctx, username)
}
