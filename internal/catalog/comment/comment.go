// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment implements user commentary attached to product listings.

Comments follow the same ownership rules as listings: anyone can read them,
only the author can edit or delete them, and the guard always checks
existence (404) before ownership (403).
*/
package comment

import "time"

// # Domain Entities

// Comment represents a single remark left on a product listing.
type Comment struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	OwnerID   string    `json:"owner_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// OwnerName is the author's display name, hydrated by list/detail queries.
	OwnerName string `json:"owner_name,omitempty"`
}

// # Field Identifiers

// Field names used in validation errors for the comment domain.
const (
	FieldProductID = "product_id"
	FieldContent   = "content"
)
