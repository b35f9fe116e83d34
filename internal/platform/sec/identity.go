// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and identity types.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, token
// generation) from the domain logic. It also defines the request-scoped
// identity value produced by the authentication middleware.
package sec

// Identity is the request-scoped authenticated principal.
//
// It is attached to the request context by the authentication middleware after
// a successful session lookup and is read-only for downstream handlers. It is
// never persisted; it lives exactly as long as the request.
type Identity struct {
	// UserID is the unique identifier of the authenticated account.
	UserID string

	// Email is the account's unique email, resolved alongside the session.
	Email string
}
