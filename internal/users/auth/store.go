// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Description: The store enforces email uniqueness; a duplicate insert
		surfaces as apperr.Conflict.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Session Data Access

// TokenStore defines the data access contract for session tokens.
//
// # Consistency
//
// The store is the single source of truth for sessions and must provide at
// least read-committed consistency for Get and DeleteByPrincipal. The unique
// constraint on the owning user is part of the contract: Put for a user who
// already holds a live session must fail with apperr.Conflict rather than
// silently creating a second session.
type TokenStore interface {

	/*
		Get returns the session identified by the opaque token.

		Description: The returned session is hydrated with the owning user's
		email so callers resolve identity in a single store round-trip. Expiry
		is NOT filtered here — the caller distinguishes "unknown token" from
		"expired token" (they carry different error codes on the wire).

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - *Session: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	Get(context context.Context, token string) (*Session, error)

	/*
		Put persists a new session keyed by its token.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: apperr.Conflict if the user already holds a session,
		    or persistence failures
	*/
	Put(context context.Context, session *Session) error

	/*
		DeleteByPrincipal removes the session owned by the given user, if any.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: apperr.NotFound when the user holds no session,
		    or deletion failures
	*/
	DeleteByPrincipal(context context.Context, userID string) error

	/*
		Delete removes the session identified by the token, if present.

		Description: Used for lazy garbage collection of rows detected as
		expired during resolution. Best-effort; callers may ignore the error.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, token string) error
}
