package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/interview-prep/internal/backend"
	"github.com/jonathan/interview-prep/internal/session"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	loginResp  *types.LoginResponse
	loginErr   error
	signupResp *types.SignupResponse
	signupErr  error
	calls      int
	lastSignup types.SignupRequest
}

func (f *fakeAPI) Login(_ context.Context, _ types.LoginRequest) (*types.LoginResponse, error) {
	f.calls++
	return f.loginResp, f.loginErr
}

func (f *fakeAPI) Signup(_ context.Context, req types.SignupRequest) (*types.SignupResponse, error) {
	f.calls++
	f.lastSignup = req
	return f.signupResp, f.signupErr
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	sealer, err := session.NewSealer("test-session-secret-0123456789")
	require.NoError(t, err)
	return session.New(session.NewMemoryStore(), sealer)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return s
}

func TestLogin_Validation(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, newTestSession(t), time.Hour, zerolog.Nop())

	for _, tc := range []struct{ email, password string }{
		{"", "pw"},
		{"   ", "pw"},
		{"a@b.co", ""},
	} {
		_, err := svc.Login(context.Background(), tc.email, tc.password, false)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, MsgLoginMissing, ve.Message)
	}
	assert.Zero(t, api.calls)
}

func TestLogin_StoresToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	token := signedToken(t, now.Add(48*time.Hour))
	api := &fakeAPI{loginResp: &types.LoginResponse{Token: token, User: &types.User{Name: "Ada", Email: "ada@example.com"}}}
	sess := newTestSession(t)
	svc := NewService(api, sess, 12*time.Hour, zerolog.Nop())
	svc.now = func() time.Time { return now }

	user, err := svc.Login(context.Background(), " ada@example.com ", "pw", true)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)

	stored, err := sess.Token(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, token, stored.Token)
	assert.True(t, stored.Remember)
	assert.Equal(t, token, svc.Token(context.Background()))
}

func TestLogin_FailureMessages(t *testing.T) {
	tests := []struct {
		name string
		resp *types.LoginResponse
		err  error
		want string
	}{
		{
			name: "backend message",
			err:  &backend.APIError{Endpoint: backend.PathLogin, Status: http.StatusUnauthorized, Message: "Invalid credentials"},
			want: "Invalid credentials",
		},
		{
			name: "transport error text",
			err:  &backend.TransportError{Endpoint: backend.PathLogin, Cause: errors.New("connection refused")},
			want: "connection refused",
		},
		{
			name: "no token",
			resp: &types.LoginResponse{},
			want: MsgLoginFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeAPI{loginResp: tt.resp, loginErr: tt.err}, newTestSession(t), time.Hour, zerolog.Nop())
			_, err := svc.Login(context.Background(), "a@b.co", "pw", false)
			var fe *FailedError
			require.True(t, errors.As(err, &fe))
			assert.Contains(t, fe.Message, tt.want)
		})
	}
}

func TestSignup_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     types.SignupRequest
		confirm string
		want    string
	}{
		{"missing name", types.SignupRequest{Email: "a@b.co", Password: "pass"}, "pass", MsgSignupMissing},
		{"missing password", types.SignupRequest{Name: "A", Email: "a@b.co"}, "", MsgSignupMissing},
		{"mismatch", types.SignupRequest{Name: "A", Email: "a@b.co", Password: "pass"}, "pasS", MsgPasswordMismatch},
		{"too short", types.SignupRequest{Name: "A", Email: "a@b.co", Password: "abc"}, "abc", MsgPasswordShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{}
			svc := NewService(api, newTestSession(t), time.Hour, zerolog.Nop())
			_, err := svc.Signup(context.Background(), tt.req, tt.confirm)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.want, ve.Message)
			assert.Zero(t, api.calls)
		})
	}
}

func TestSignup_Success(t *testing.T) {
	api := &fakeAPI{signupResp: &types.SignupResponse{Message: "User created"}}
	svc := NewService(api, newTestSession(t), time.Hour, zerolog.Nop())

	resp, err := svc.Signup(context.Background(), types.SignupRequest{
		Name: " Ada ", Email: "ada@example.com", Password: "abcd", LeetcodeUname: "ada",
	}, "abcd")
	require.NoError(t, err)
	assert.Equal(t, "User created", resp.Message)
	assert.Equal(t, "Ada", api.lastSignup.Name)
	assert.Equal(t, "ada", api.lastSignup.LeetcodeUname)
}

func TestSignup_BackendError(t *testing.T) {
	api := &fakeAPI{signupErr: &backend.APIError{Endpoint: backend.PathSignup, Status: http.StatusConflict, Message: "User already exists"}}
	svc := NewService(api, newTestSession(t), time.Hour, zerolog.Nop())

	_, err := svc.Signup(context.Background(), types.SignupRequest{Name: "A", Email: "a@b.co", Password: "abcd"}, "abcd")
	assert.EqualError(t, err, "User already exists")
}

func TestStatus_SessionTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	api := &fakeAPI{loginResp: &types.LoginResponse{Token: signedToken(t, now.Add(7*24*time.Hour))}}
	sess := newTestSession(t)
	svc := NewService(api, sess, 12*time.Hour, zerolog.Nop())
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := svc.Login(ctx, "a@b.co", "pw", false)
	require.NoError(t, err)

	st, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.LoggedIn)
	assert.True(t, now.Add(12*time.Hour).Equal(st.ExpiresAt))

	svc.now = func() time.Time { return now.Add(13 * time.Hour) }
	st, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, st.LoggedIn)
	assert.True(t, st.Expired)
	assert.Empty(t, svc.Token(ctx))

	stored, err := sess.Token(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestStatus_RememberedUsesTokenExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	exp := now.Add(24 * time.Hour)
	api := &fakeAPI{loginResp: &types.LoginResponse{Token: signedToken(t, exp)}}
	svc := NewService(api, newTestSession(t), 12*time.Hour, zerolog.Nop())
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := svc.Login(ctx, "a@b.co", "pw", true)
	require.NoError(t, err)

	svc.now = func() time.Time { return now.Add(20 * time.Hour) }
	st, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.LoggedIn)
	assert.True(t, exp.Equal(st.ExpiresAt))

	svc.now = func() time.Time { return now.Add(25 * time.Hour) }
	st, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.Expired)
}

func TestStatus_OpaqueToken(t *testing.T) {
	api := &fakeAPI{loginResp: &types.LoginResponse{Token: "opaque-token"}}
	svc := NewService(api, newTestSession(t), 12*time.Hour, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Login(ctx, "a@b.co", "pw", true)
	require.NoError(t, err)

	st, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, st.LoggedIn)
	assert.True(t, st.ExpiresAt.IsZero())
}

func TestLogout(t *testing.T) {
	api := &fakeAPI{loginResp: &types.LoginResponse{Token: "t"}}
	svc := NewService(api, newTestSession(t), time.Hour, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Login(ctx, "a@b.co", "pw", true)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	st, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, st.LoggedIn)
	assert.False(t, st.Expired)
}
