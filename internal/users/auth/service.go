// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/vendora/internal/platform/apperr"
	"github.com/taibuivan/vendora/internal/platform/ctxutil"
	"github.com/taibuivan/vendora/internal/platform/sec"
	"github.com/taibuivan/vendora/pkg/uuid"
)

// Service implements authentication and session-management use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, session
// issuance, or token resolution must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	tokenStore     TokenStore
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenStore TokenStore) *Service {
	return &Service{
		userRepository: userRepo,
		tokenStore:     tokenStore,
	}
}

// # Session Lifecycle

/*
CreateSession issues a fresh opaque session token for the given user.

Description: Generates a cryptographically random token, computes the expiry
(now + SessionTTL), and persists the session keyed by the token.

CreateSession deliberately does NOT check for an existing session — callers
decide whether to retire a prior session first. At login the existing session
is deleted before the new one is created, so the unique-per-user invariant
never transiently breaks into two live sessions; at signup no prior session
can exist. If two logins race past the delete, the store's unique constraint
rejects the second insert and the loser surfaces apperr.Conflict.

Parameters:
  - context: context.Context
  - user: *User (session owner)

Returns:
  - *Session: The persisted session, including the bearer token
  - error: apperr.Conflict (concurrent login race) or storage errors
*/
func (service *Service) CreateSession(context context.Context, user *User) (*Session, error) {

	// Generate the opaque bearer credential
	token, err := sec.GenerateSecureToken(SessionTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	session := &Session{
		Token:    token,
		UserID:   user.ID,
		ExpireAt: time.Now().Add(SessionTTL),
		Email:    user.Email,
	}

	if err := service.tokenStore.Put(context, session); err != nil {
		// Conflict is part of the contract: the unique constraint on the
		// owning user arbitrates concurrent logins. Pass it through untouched.
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusConflict {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return session, nil
}

/*
RetireSession deletes the session owned by the given user, if any.

Description: Idempotent at this layer — retiring a user with no session is
not an error. Genuine store failures still propagate so the call site (e.g.
logout) can surface them.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Storage failures other than "no session to delete"
*/
func (service *Service) RetireSession(context context.Context, userID string) error {
	err := service.tokenStore.DeleteByPrincipal(context, userID)
	if err == nil {
		return nil
	}

	// Zero rows deleted is fine here.
	if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
		return nil
	}

	return fmt.Errorf("auth_service_session_retirement_failed: %w", err)
}

/*
ResolveToken resolves an opaque token into an authenticated identity.

Description: Single store lookup per call. Distinguishes "token unknown to
the store" (INVALID_TOKEN) from "token known but past expiry" (EXPIRED_TOKEN);
both reject with 403. Expired rows are lazily garbage-collected best-effort —
an expired session is never treated as live whether or not the delete lands.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *sec.Identity: The owning user's id and email
  - error: apperr.InvalidToken, apperr.ExpiredToken, or storage failures
*/
func (service *Service) ResolveToken(context context.Context, token string) (*sec.Identity, error) {
	session, err := service.tokenStore.Get(context, token)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
			return nil, apperr.InvalidToken()
		}
		return nil, fmt.Errorf("auth_service_token_resolution_failed: %w", err)
	}

	if session.Expired(time.Now()) {
		// Lazy cleanup; resolution outcome does not depend on it.
		if err := service.tokenStore.Delete(context, session.Token); err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "expired_session_gc_failed",
				slog.String("user_id", session.UserID),
				slog.Any("error", err),
			)
		}
		return nil, apperr.ExpiredToken()
	}

	return &sec.Identity{
		UserID: session.UserID,
		Email:  session.Email,
	}, nil
}

// # Registration Flow

// SignupInput holds the data required to enroll a new member.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Role     sec.UserRole
}

// AuthSession represents a successfully established user session.
type AuthSession struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

/*
Signup validates, hashes, and persists a brand new user account, then opens
the account's first session.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *AuthSession: Transport-ready session credentials
  - error: apperr.Conflict (email taken) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*AuthSession, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         input.Role,
	}

	// Persist the user to the database. The unique index on email backs the
	// existence check above against concurrent signups.
	if err := service.userRepository.Create(context, user); err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusConflict {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	// A fresh account cannot hold a prior session; create directly.
	session, err := service.CreateSession(context, user)
	if err != nil {
		return nil, err
	}

	return &AuthSession{
		Token:     session.Token,
		ExpiresAt: session.ExpireAt,
		User:      user,
	}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a fresh session.

Description: Verifies identity with a constant-time password comparison, then
renews the session as an explicit delete-then-create sequence: any existing
session for the user is retired BEFORE the replacement is created, so the
one-session-per-user invariant holds at every observable instant.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: Transport-ready session credentials
  - error: apperr.NotFound (unknown email), apperr.Forbidden (bad password),
    apperr.Conflict (concurrent login race), or storage errors
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthSession, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.HTTPStatus == http.StatusNotFound {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// Bcrypt comparison is constant-time to prevent timing attacks.
	// No session mutation happens on a failed attempt.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Forbidden("Invalid credentials")
	}

	// Renewal is always delete-then-create, never in-place.
	if err := service.RetireSession(context, user.ID); err != nil {
		return nil, err
	}

	session, err := service.CreateSession(context, user)
	if err != nil {
		return nil, err
	}

	return &AuthSession{
		Token:     session.Token,
		ExpiresAt: session.ExpireAt,
		User:      user,
	}, nil
}

/*
Logout retires the authenticated user's active session.

Description: Reaching this point requires the authentication gate, so the
user is known. Retiring an already-gone session is a no-op; genuine store
failures surface to the caller.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Retirement failures
*/
func (service *Service) Logout(context context.Context, userID string) error {
	return service.RetireSession(context, userID)
}

// # Profile

/*
Profile returns the account of the authenticated user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) Profile(context context.Context, userID string) (*User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		var appError *apperr.AppError
		if errors.As(err, &appError) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_profile_lookup_failed: %w", err)
	}
	return user, nil
}
