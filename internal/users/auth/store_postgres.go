// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// PostgreSQL implementations of the auth storage contracts.
//
// # Architecture
//
// Repositories here are strictly separated from domain logic. They implement
// the domain-defined interfaces ([UserRepository], [TokenStore]) using the
// [pgxpool.Pool] connection manager.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows or unique-constraint
// violations) are mapped to domain-friendly [apperr.AppError] types to avoid
// leaking storage implementation details.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vendora/internal/platform/apperr"
	"github.com/taibuivan/vendora/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: The unique index on email backs the service-level existence
check; a duplicate insert surfaces as apperr.Conflict.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate email, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, name, email, passwordhash, role, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Email is already registered")
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `
		SELECT id, name, email, passwordhash, role, createdat, updatedat
		FROM users.account
		WHERE email = $1`

	user := &User{}
	err := repository.pool.QueryRow(context, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found with this email")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Description: Primary key resolution for user accounts.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, name, email, passwordhash, role, createdat, updatedat
		FROM users.account
		WHERE id = $1`

	user := &User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

// # Token Store

// PostgresTokenStore implements the TokenStore interface using pgx.
//
// The users.session table carries a UNIQUE constraint on userid; Put relies
// on it to arbitrate concurrent logins for the same user.
type PostgresTokenStore struct {
	pool *pgxpool.Pool
}

// NewTokenStore creates a new PostgreSQL implementation of the TokenStore.
func NewTokenStore(pool *pgxpool.Pool) *PostgresTokenStore {
	return &PostgresTokenStore{pool: pool}
}

/*
Get retrieves the session identified by the opaque token.

Description: Joins the owning account so the caller resolves identity in one
round-trip. Expiry is deliberately NOT filtered in SQL — the service layer
tells an unknown token apart from an expired one.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *Session: Hydrated session, including the owner's email
  - error: apperr.NotFound or execution errors
*/
func (store *PostgresTokenStore) Get(context context.Context, token string) (*Session, error) {
	const query = `
		SELECT s.token, s.userid, s.expireat, s.createdat, a.email
		FROM users.session s
		JOIN users.account a ON a.id = s.userid
		WHERE s.token = $1`

	session := &Session{}
	err := store.pool.QueryRow(context, query, token).Scan(
		&session.Token,
		&session.UserID,
		&session.ExpireAt,
		&session.CreatedAt,
		&session.Email,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Session not found")
		}
		return nil, fmt.Errorf("postgres_token_store_get_failed: %w", err)
	}

	return session, nil
}

/*
Put persists a new session record into the users.session table.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: apperr.Conflict if the user already holds a session,
    or storage failures
*/
func (store *PostgresTokenStore) Put(context context.Context, session *Session) error {
	const query = `
		INSERT INTO users.session (token, userid, expireat, createdat)
		VALUES ($1, $2, $3, $4)`

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	_, err := store.pool.Exec(context, query,
		session.Token,
		session.UserID,
		session.ExpireAt,
		session.CreatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("User already holds an active session")
		}
		return fmt.Errorf("postgres_token_store_put_failed: %w", err)
	}

	return nil
}

/*
DeleteByPrincipal removes the session owned by the given user, if any.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: apperr.NotFound when the user holds no session, or deletion failures
*/
func (store *PostgresTokenStore) DeleteByPrincipal(context context.Context, userID string) error {
	const query = "DELETE FROM users.session WHERE userid = $1"

	tag, err := store.pool.Exec(context, query, userID)
	if err != nil {
		return fmt.Errorf("postgres_token_store_delete_by_principal_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Session not found for user")
	}

	return nil
}

/*
Delete removes the session identified by the token, if present.

Description: Lazy garbage collection path. Deleting an already-gone row is
not an error.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (store *PostgresTokenStore) Delete(context context.Context, token string) error {
	const query = "DELETE FROM users.session WHERE token = $1"

	if _, err := store.pool.Exec(context, query, token); err != nil {
		return fmt.Errorf("postgres_token_store_delete_failed: %w", err)
	}

	return nil
}
