// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import "context"

// # Data Access

// Repository defines the data access contract for product listings.
type Repository interface {

	/*
		List returns a page of listings plus the total count for pagination.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []*Product: Listings hydrated with owner display fields
		  - int: Total listing count
		  - error: Retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]*Product, int, error)

	/*
		FindByID returns the listing with the given ID.

		Returns:
		  - *Product: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Product, error)

	/*
		Create persists a new listing.

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, product *Product) error

	/*
		Update persists changes to a listing's mutable fields.

		Returns:
		  - error: Update failures
	*/
	Update(context context.Context, product *Product) error

	/*
		Delete permanently removes a listing. Dependent comments cascade at
		the storage level.

		Returns:
		  - error: apperr.NotFound when the listing is absent, or deletion failures
	*/
	Delete(context context.Context, id string) error
}
