// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Can publish and manage product listings
	RoleOwner UserRole = "OWNER"

	// Default role for standard registered users
	RoleUser UserRole = "USER"
)

// Valid reports whether the role is one of the recognized values.
//
// Roles arrive from the signup payload as free-form strings, so every write
// path must gate on this before persisting.
func (r UserRole) Valid() bool {
	switch r {
	case RoleOwner, RoleUser:
		return true
	default:
		return false
	}
}
