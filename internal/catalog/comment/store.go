// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// # Data Access

// Filter narrows a comment listing. Zero values mean "no filter".
type Filter struct {
	ProductID string
}

// Repository defines the data access contract for comments.
type Repository interface {

	/*
		List returns a page of comments plus the total count, optionally
		narrowed to a single product.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Comment: Comments hydrated with the author's display name
		  - int: Total comment count matching the filter
		  - error: Retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Comment, int, error)

	/*
		FindByID returns the comment with the given ID.

		Returns:
		  - *Comment: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		Create persists a new comment.

		Returns:
		  - error: apperr.NotFound when the target product does not exist,
		    or persistence failures
	*/
	Create(context context.Context, comment *Comment) error

	/*
		Update persists a change to a comment's content.

		Returns:
		  - error: Update failures
	*/
	Update(context context.Context, comment *Comment) error

	/*
		Delete permanently removes a comment.

		Returns:
		  - error: apperr.NotFound when the comment is absent, or deletion failures
	*/
	Delete(context context.Context, id string) error
}
