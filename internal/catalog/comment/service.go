// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"

	"github.com/taibuivan/vendora/internal/platform/apperr"
	"github.com/taibuivan/vendora/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for listing commentary.
type Service struct {
	commentRepo Repository
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(commentRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		commentRepo: commentRepo,
		logger:      logger,
	}
}

// # Lookups

/*
ListComments retrieves a paginated collection of comments, optionally
narrowed to one product.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Comment: Slice of matching comments
  - int: Total count for pagination metadata
  - error: Repository level errors
*/
func (service *Service) ListComments(context context.Context, filter Filter, limit, offset int) ([]*Comment, int, error) {
	return service.commentRepo.List(context, filter, limit, offset)
}

/*
GetComment fetches a single comment by its UUID.

Returns:
  - *Comment: The hydrated domain entity
  - error: apperr.NotFound if no match is found
*/
func (service *Service) GetComment(context context.Context, id string) (*Comment, error) {
	return service.commentRepo.FindByID(context, id)
}

// # Management

/*
CreateComment attaches a new comment to a product, authored by the caller.

Description: The repository rejects a comment targeting an unknown product
with apperr.NotFound (the foreign key is authoritative, not a pre-check).

Parameters:
  - context: context.Context
  - ownerID: string (Authenticated caller)
  - productID: string
  - content: string

Returns:
  - *Comment: The persisted comment
  - error: apperr.NotFound (unknown product) or persistence errors
*/
func (service *Service) CreateComment(context context.Context, ownerID, productID, content string) (*Comment, error) {
	comment := &Comment{
		ID:        uuid.New(),
		ProductID: productID,
		OwnerID:   ownerID,
		Content:   content,
	}

	if err := service.commentRepo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("product_id", productID),
	)

	return comment, nil
}

/*
UpdateComment replaces a comment's content.

Description: Ownership guard: the comment is loaded first, so a missing
comment is apperr.NotFound and a comment authored by someone else is
apperr.Forbidden — existence before ownership, always.

Parameters:
  - context: context.Context
  - callerID: string (Authenticated caller)
  - id: string (Comment UUID)
  - content: string

Returns:
  - *Comment: The updated comment
  - error: apperr.NotFound, apperr.Forbidden, or persistence errors
*/
func (service *Service) UpdateComment(context context.Context, callerID, id, content string) (*Comment, error) {
	comment, err := service.commentRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if comment.OwnerID != callerID {
		return nil, apperr.Forbidden("You do not own this comment")
	}

	comment.Content = content
	if err := service.commentRepo.Update(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.String("comment_id", comment.ID))

	return comment, nil
}

/*
DeleteComment permanently removes a comment.

Description: Same guard ordering as UpdateComment.

Parameters:
  - context: context.Context
  - callerID: string (Authenticated caller)
  - id: string (Comment UUID)

Returns:
  - error: apperr.NotFound, apperr.Forbidden, or deletion errors
*/
func (service *Service) DeleteComment(context context.Context, callerID, id string) error {
	comment, err := service.commentRepo.FindByID(context, id)
	if err != nil {
		return err
	}

	if comment.OwnerID != callerID {
		return apperr.Forbidden("You do not own this comment")
	}

	if err := service.commentRepo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("comment_deleted",
		slog.String("comment_id", id),
		slog.String("owner_id", callerID),
	)

	return nil
}
