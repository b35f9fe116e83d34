// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/vendora/internal/platform/apperr"
	"github.com/taibuivan/vendora/internal/platform/constants"
)

// expiredRetention keeps an expired session row readable for a window after
// its logical expiry. Within the window, resolution can report "expired"
// rather than "unknown"; once Redis evicts the key the token degrades to
// unknown, which still rejects.
const expiredRetention = 24 * time.Hour

// redisSession is the wire shape of a session stored in Redis. Separate from
// [Session] because the domain entity hides Token and Email from JSON.
type redisSession struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpireAt  time.Time `json:"expire_at"`
	CreatedAt time.Time `json:"created_at"`
	Email     string    `json:"email"`
}

// RedisTokenStore implements the TokenStore interface using Redis.
//
// # Key Layout
//
//   - auth:session:<token>        → JSON session record
//   - auth:session_owner:<userID> → token of the user's live session
//
// The owner key is written with SETNX, which is what enforces the
// one-session-per-user constraint in this backend.
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a new Redis-backed TokenStore.
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

/*
Get retrieves the session identified by the opaque token.

Description: Returns apperr.NotFound once Redis has evicted the key. Expiry
is carried in the record, not delegated to Redis TTL, so the caller can still
distinguish a recently expired session from an unknown token.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *Session: Hydrated session, including the owner's email
  - error: apperr.NotFound or connectivity errors
*/
func (store *RedisTokenStore) Get(context context.Context, token string) (*Session, error) {
	payload, err := store.client.Get(context, constants.RedisPrefixSession+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session not found")
		}
		return nil, fmt.Errorf("redis_token_store_get_failed: %w", err)
	}

	var record redisSession
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return nil, fmt.Errorf("redis_token_store_decode_failed: %w", err)
	}

	return &Session{
		Token:     record.Token,
		UserID:    record.UserID,
		ExpireAt:  record.ExpireAt,
		CreatedAt: record.CreatedAt,
		Email:     record.Email,
	}, nil
}

/*
Put persists a new session keyed by its token.

Description: Claims the owner key with SETNX first; losing that claim means
the user already holds a live session and the insert fails with
apperr.Conflict, mirroring the relational unique constraint.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: apperr.Conflict if the user already holds a session,
    or storage failures
*/
func (store *RedisTokenStore) Put(context context.Context, session *Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	ttl := time.Until(session.ExpireAt) + expiredRetention

	// Claim single-session ownership first.
	ownerKey := constants.RedisPrefixSessionOwner + session.UserID
	claimed, err := store.client.SetNX(context, ownerKey, session.Token, ttl).Result()
	if err != nil {
		return fmt.Errorf("redis_token_store_claim_failed: %w", err)
	}
	if !claimed {
		return apperr.Conflict("User already holds an active session")
	}

	payload, err := json.Marshal(redisSession{
		Token:     session.Token,
		UserID:    session.UserID,
		ExpireAt:  session.ExpireAt,
		CreatedAt: session.CreatedAt,
		Email:     session.Email,
	})
	if err != nil {
		return fmt.Errorf("redis_token_store_encode_failed: %w", err)
	}

	if err := store.client.Set(context, constants.RedisPrefixSession+session.Token, payload, ttl).Err(); err != nil {
		// Release the claim so the user is not locked out of logging in.
		store.client.Del(context, ownerKey)
		return fmt.Errorf("redis_token_store_put_failed: %w", err)
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
func (store *RedisTokenStore) DeleteByPrincipal(context context.Context, userID string) error {
	ownerKey := constants.RedisPrefixSessionOwner + userID

	token, err := store.client.Get(context, ownerKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperr.NotFound("Session not found for user")
		}
		return fmt.Errorf("redis_token_store_owner_lookup_failed: %w", err)
	}

	if err := store.client.Del(context, constants.RedisPrefixSession+token, ownerKey).Err(); err != nil {
		return fmt.Errorf("redis_token_store_delete_by_principal_failed: %w", err)
	}

	return nil
}

/*
Delete removes the session identified by the token, if present.

Description: Lazy garbage collection path; also releases the owner claim so
the user can log in again immediately.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (store *RedisTokenStore) Delete(context context.Context, token string) error {
	session, err := store.Get(context, token)
	if err != nil {
		if appError := apperr.As(err); appError != nil {
			return nil
		}
		return err
	}

	if err := store.client.Del(context, constants.RedisPrefixSession+token).Err(); err != nil {
		return fmt.Errorf("redis_token_store_delete_failed: %w", err)
	}

	// Release the owner claim only if it still points at this token; a newer
	// session for the same user must not lose its claim.
	ownerKey := constants.RedisPrefixSessionOwner + session.UserID
	current, err := store.client.Get(context, ownerKey).Result()
	if err == nil && current == token {
		if err := store.client.Del(context, ownerKey).Err(); err != nil {
			return fmt.Errorf("redis_token_store_claim_release_failed: %w", err)
		}
	}

	return nil
}
