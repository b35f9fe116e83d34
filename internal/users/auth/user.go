// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and logic for
authentication, authorization, and the session lifecycle.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.

# Session Model

Sessions are single-active: at most one live Session exists per user at any
observable instant. A new login retires the previous session before creating
its replacement; a session is never renewed in place.
*/
package auth

import (
	"time"

	"github.com/taibuivan/vendora/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Vendora marketplace.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session represents the single active authenticated session of a user.
//
// The opaque token is the primary key. UserID carries a unique constraint in
// the store, which is what ultimately enforces the one-session-per-user
// invariant — including under concurrent logins.
type Session struct {
	Token     string    `json:"-"` // Bearer credential. Never serialized.
	UserID    string    `json:"user_id"`
	ExpireAt  time.Time `json:"expire_at"`
	CreatedAt time.Time `json:"created_at"`

	// Email is the owning user's email, carried alongside the session so the
	// authentication gate pays a single store lookup per request. Set at
	// creation and re-hydrated by Get.
	Email string `json:"-"`
}

// Expired reports whether the session's expiry is strictly before now.
//
// An expired row that has not yet been physically deleted is never treated
// as live.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpireAt.Before(now)
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldMessage  = "message"
)
