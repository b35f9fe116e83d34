// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"log/slog"

	"github.com/taibuivan/vendora/internal/platform/apperr"
	"github.com/taibuivan/vendora/pkg/slug"
	"github.com/taibuivan/vendora/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for the product catalogue.
type Service struct {
	productRepo Repository
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(productRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		productRepo: productRepo,
		logger:      logger,
	}
}

// # Lookups

/*
ListProducts retrieves a paginated collection of listings.

Parameters:
  - context: context.Context
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*Product: Slice of matching listings
  - int: Total count for pagination metadata
  - error: Repository level errors
*/
func (service *Service) ListProducts(context context.Context, limit, offset int) ([]*Product, int, error) {
	return service.productRepo.List(context, limit, offset)
}

/*
GetProduct fetches a single listing by its UUID.

Returns:
  - *Product: The hydrated domain entity
  - error: apperr.NotFound if no match is found
*/
func (service *Service) GetProduct(context context.Context, id string) (*Product, error) {
	return service.productRepo.FindByID(context, id)
}

// # Management

// CreateInput holds the attributes of a new listing.
type CreateInput struct {
	Title       string
	Description string
	ImageURL    string
}

/*
CreateProduct initialises a new listing owned by the caller.

Description: Generates a stable UUIDv7 identity and an SEO-friendly slug
from the title before persisting.

Parameters:
  - context: context.Context
  - ownerID: string (Authenticated caller)
  - input: CreateInput

Returns:
  - *Product: The persisted listing
  - error: Persistence errors
*/
func (service *Service) CreateProduct(context context.Context, ownerID string, input CreateInput) (*Product, error) {
	product := &Product{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       input.Title,
		Slug:        slug.From(input.Title),
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}

	if err := service.productRepo.Create(context, product); err != nil {
		return nil, err
	}

	service.logger.Info("product_created",
		slog.String("product_id", product.ID),
		slog.String("owner_id", ownerID),
	)

	return product, nil
}

// UpdateInput holds the mutable attributes of a listing. Empty fields are
// left untouched (partial update).
type UpdateInput struct {
	Title       string
	Description string
	ImageURL    string
}

/*
UpdateProduct applies modifications to an existing listing.

Description: Loads the listing first and runs the ownership guard: a missing
listing is apperr.NotFound, a listing owned by someone else is
apperr.Forbidden. Existence is checked before ownership, so a caller probing
a foreign listing learns that it exists but nothing more.

Parameters:
  - context: context.Context
  - callerID: string (Authenticated caller)
  - id: string (Listing UUID)
  - input: UpdateInput

Returns:
  - *Product: The updated listing
  - error: apperr.NotFound, apperr.Forbidden, or persistence errors
*/
func (service *Service) UpdateProduct(context context.Context, callerID, id string, input UpdateInput) (*Product, error) {
	product, err := service.productRepo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if product.OwnerID != callerID {
		return nil, apperr.Forbidden("You do not own this listing")
	}

	if input.Title != "" {
		product.Title = input.Title
		product.Slug = slug.From(input.Title)
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}

	if err := service.productRepo.Update(context, product); err != nil {
		return nil, err
	}

	service.logger.Info("product_updated", slog.String("product_id", product.ID))

	return product, nil
}

/*
DeleteProduct permanently removes a listing.

Description: Same guard ordering as UpdateProduct. Comments attached to the
listing cascade at the storage level.

Parameters:
  - context: context.Context
  - callerID: string (Authenticated caller)
  - id: string (Listing UUID)

Returns:
  - error: apperr.NotFound, apperr.Forbidden, or deletion errors
*/
func (service *Service) DeleteProduct(context context.Context, callerID, id string) error {
	product, err := service.productRepo.FindByID(context, id)
	if err != nil {
		return err
	}

	if product.OwnerID != callerID {
		return apperr.Forbidden("You do not own this listing")
	}

	if err := service.productRepo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Warn("product_deleted",
		slog.String("product_id", id),
		slog.String("owner_id", callerID),
	)

	return nil
}
