// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vendora/internal/platform/apperr"
	"github.com/taibuivan/vendora/internal/platform/sec"
	"github.com/taibuivan/vendora/internal/users/auth"
)

// # In-Memory Fakes

// memUserRepo is an in-memory UserRepository for service tests.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*auth.User // keyed by ID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*auth.User)}
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User not found")
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User not found with this email")
}

func (r *memUserRepo) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperr.Conflict("Email is already registered")
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

// memTokenStore is an in-memory TokenStore enforcing the same single-session
// constraint as the relational schema.
type memTokenStore struct {
	mu       sync.Mutex
	byToken  map[string]*auth.Session
	byUserID map[string]string // userID -> token
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{
		byToken:  make(map[string]*auth.Session),
		byUserID: make(map[string]string),
	}
}

func (s *memTokenStore) Get(_ context.Context, token string) (*auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.byToken[token]; ok {
		copied := *session
		return &copied, nil
	}
	return nil, apperr.NotFound("Session not found")
}

func (s *memTokenStore) Put(_ context.Context, session *auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byUserID[session.UserID]; taken {
		return apperr.Conflict("User already holds an active session")
	}
	copied := *session
	s.byToken[session.Token] = &copied
	s.byUserID[session.UserID] = session.Token
	return nil
}

func (s *memTokenStore) DeleteByPrincipal(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.byUserID[userID]
	if !ok {
		return apperr.NotFound("Session not found for user")
	}
	delete(s.byToken, token)
	delete(s.byUserID, userID)
	return nil
}

func (s *memTokenStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.byToken[token]; ok {
		delete(s.byToken, token)
		if s.byUserID[session.UserID] == token {
			delete(s.byUserID, session.UserID)
		}
	}
	return nil
}

func (s *memTokenStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byToken)
}

// newTestService wires a Service against fresh in-memory fakes.
func newTestService() (*auth.Service, *memUserRepo, *memTokenStore) {
	userRepo := newMemUserRepo()
	tokenStore := newMemTokenStore()
	return auth.NewService(userRepo, tokenStore), userRepo, tokenStore
}

// # Registration

/*
TestSignup_CreatesUserAndSession verifies that a signup yields exactly one
persisted user and one live session whose expiry sits 24 hours out.
*/
func TestSignup_CreatesUserAndSession(t *testing.T) {
	service, userRepo, tokenStore := newTestService()

	session, err := service.Signup(context.Background(), auth.SignupInput{
		Name:     "Tai",
		Email:    "tai@vendora.com",
		Password: "correct-horse",
		Role:     sec.RoleUser,
	})
	require.NoError(t, err)
	require.NotNil(t, session)

	// Exactly one user, one session.
	assert.Len(t, userRepo.users, 1)
	assert.Equal(t, 1, tokenStore.count())

	// 32 random bytes encode to 43 base64url characters.
	assert.Len(t, session.Token, 43)

	// Expiry is now + 24h, within test tolerance.
	assert.WithinDuration(t, time.Now().Add(auth.SessionTTL), session.ExpiresAt, 5*time.Second)

	// The stored hash is not the plain password.
	assert.NotEqual(t, "correct-horse", session.User.PasswordHash)
}

/*
TestSignup_DuplicateEmail_Conflict verifies the 409 contract for a second
signup with the same email.
*/
func TestSignup_DuplicateEmail_Conflict(t *testing.T) {
	service, _, tokenStore := newTestService()

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Name: "Tai", Email: "tai@vendora.com", Password: "correct-horse", Role: sec.RoleUser,
	})
	require.NoError(t, err)

	_, err = service.Signup(context.Background(), auth.SignupInput{
		Name: "Imposter", Email: "tai@vendora.com", Password: "other-password", Role: sec.RoleUser,
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	// The failed signup must not have opened a second session.
	assert.Equal(t, 1, tokenStore.count())
}

// # Login

/*
TestLogin_RotatesSession verifies the delete-then-create renewal: a second
login invalidates the first token and never leaves two live sessions.
*/
func TestLogin_RotatesSession(t *testing.T) {
	service, _, tokenStore := newTestService()

	first, err := service.Signup(context.Background(), auth.SignupInput{
		Name: "Tai", Email: "tai@vendora.com", Password: "correct-horse", Role: sec.RoleUser,
	})
	require.NoError(t, err)

	second, err := service.Login(context.Background(), auth.LoginInput{
		Email: "tai@vendora.com", Password: "correct-horse",
	})
	require.NoError(t, err)

	// Fresh credential, single live session.
	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, 1, tokenStore.count())

	// The retired token no longer resolves.
	_, err = service.ResolveToken(context.Background(), first.Token)
	require.Error(t, err)
	assert.Equal(t, "INVALID_TOKEN", apperr.As(err).Code)

	// The new one does.
	identity, err := service.ResolveToken(context.Background(), second.Token)
	require.NoError(t, err)
	assert.Equal(t, "tai@vendora.com", identity.Email)
}

/*
TestLogin_UnknownEmail_NotFound verifies the lookup failure surfaces as 404.
*/
func TestLogin_UnknownEmail_NotFound(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Login(context.Background(), auth.LoginInput{
		Email: "ghost@vendora.com", Password: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestLogin_WrongPassword_Forbidden verifies a bad password is rejected with
403 and, critically, does not disturb the existing session.
*/
func TestLogin_WrongPassword_Forbidden(t *testing.T) {
	service, _, _ := newTestService()

	signup, err := service.Signup(context.Background(), auth.SignupInput{
		Name: "Tai", Email: "tai@vendora.com", Password: "correct-horse", Role: sec.RoleUser,
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), auth.LoginInput{
		Email: "tai@vendora.com", Password: "wrong-horse",
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// The original session survived the failed attempt untouched.
	identity, err := service.ResolveToken(context.Background(), signup.Token)
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, identity.UserID)
}

// # Session Lifecycle

/*
TestResolveToken_Expired verifies the expired path: 403 EXPIRED_TOKEN plus
lazy removal of the dead row.
*/
func TestResolveToken_Expired(t *testing.T) {
	service, _, tokenStore := newTestService()

	signup, err := service.Signup(context.Background(), auth.SignupInput{
		Name: "Tai", Email: "tai@vendora.com", Password: "correct-horse", Role: sec.RoleUser,
	})
	require.NoError(t, err)

	// Age the session past its expiry.
	tokenStore.mu.Lock()
	tokenStore.byToken[signup.Token].ExpireAt = time.Now().Add(-time.Minute)
	tokenStore.mu.Unlock()

	_, err = service.ResolveToken(context.Background(), signup.Token)
	require.Error(t, err)
	assert.Equal(t, "EXPIRED_TOKEN", apperr.As(err).Code)

	// Lazy GC removed the row; the token now reads as unknown.
	_, err = service.ResolveToken(context.Background(), signup.Token)
	require.Error(t, err)
	assert.Equal(t, "INVALID_TOKEN", apperr.As(err).Code)
	assert.Equal(t, 0, tokenStore.count())
}

/*
TestResolveToken_Unknown verifies a token the store has never seen is
rejected as INVALID_TOKEN.
*/
func TestResolveToken_Unknown(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.ResolveToken(context.Background(), "never-issued")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "INVALID_TOKEN", ae.Code)
}

/*
TestLogout_Idempotent verifies retiring twice is not an error: the second
call finds nothing to delete and still succeeds.
*/
func TestLogout_Idempotent(t *testing.T) {
	service, _, tokenStore := newTestService()

	signup, err := service.Signup(context.Background(), auth.SignupInput{
		Name: "Tai", Email: "tai@vendora.com", Password: "correct-horse", Role: sec.RoleUser,
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), signup.User.ID))
	assert.Equal(t, 0, tokenStore.count())

	// Second logout is a no-op, not a failure.
	require.NoError(t, service.Logout(context.Background(), signup.User.ID))
}

/*
TestCreateSession_ConcurrentLoginConflict simulates the race where two logins
pass the delete step: the store's uniqueness claim makes the second insert
lose with a 409.
*/
func TestCreateSession_ConcurrentLoginConflict(t *testing.T) {
	service, _, tokenStore := newTestService()

	signup, err := service.Signup(context.Background(), auth.SignupInput{
		Name: "Tai", Email: "tai@vendora.com", Password: "correct-horse", Role: sec.RoleUser,
	})
	require.NoError(t, err)

	// The user already holds a session (from signup); a direct create models
	// the racing login that skipped retirement.
	_, err = service.CreateSession(context.Background(), signup.User)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// Loser left no residue.
	assert.Equal(t, 1, tokenStore.count())
}
