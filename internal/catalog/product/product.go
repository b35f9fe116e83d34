// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package product implements the product listing side of the Vendora catalogue.

It defines the Product entity and the business rules for creating, browsing,
and maintaining listings.

# Ownership

Every listing belongs to the user who created it. Mutations (update, delete)
pass an ownership guard: the listing is loaded first, so a missing listing is
a 404 and a listing owned by someone else is a 403 — in that order, always.
*/
package product

import "time"

// # Domain Entities

// Product represents a single marketplace listing.
type Product struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Owner display fields, hydrated by list/detail queries.
	OwnerName  string `json:"owner_name,omitempty"`
	OwnerEmail string `json:"owner_email,omitempty"`
}

// # Field Identifiers

// Field names used in validation errors for the product domain.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImageURL    = "image_url"
)
