// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP interface for browsing and managing product listings.

# Routing Strategy

  - Public: Discovery endpoints accessible to all visitors (GET).
  - Gated: Mutative endpoints behind the session authentication gate
    (POST, PATCH, DELETE). Ownership is enforced in the service layer.
*/

package product

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/vendora/internal/platform/middleware"
	requestutil "github.com/taibuivan/vendora/internal/platform/request"
	"github.com/taibuivan/vendora/internal/platform/respond"
	"github.com/taibuivan/vendora/internal/platform/validate"
	"github.com/taibuivan/vendora/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the product catalogue.
type Handler struct {
	service  *Service
	resolver middleware.SessionResolver
}

// NewHandler constructs a new product [Handler].
func NewHandler(service *Service, resolver middleware.SessionResolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

// Routes returns a [chi.Router] configured with the product domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listProducts)
	router.Get("/{id}", handler.getProduct)

	// ## Listing Management (Session Gated)
	router.Group(func(gated chi.Router) {
		gated.Use(middleware.Authenticate(handler.resolver))

		gated.Post("/", handler.createProduct)
		gated.Patch("/{id}", handler.updateProduct)
		gated.Delete("/{id}", handler.deleteProduct)
	})

	return router
}

// # Request Payloads

type createProductRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type updateProductRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// # Endpoints

/*
GET /api/v1/products.

Description: Retrieves a paginated list of listings, each hydrated with the
owner's display name and email.

Request:
  - limit: int
  - page: int

Response:
  - 200: []Product: Paginated list of listings
*/
func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	products, total, err := handler.service.ListProducts(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/products/{id}.

Response:
  - 200: Product: Success
  - 404: ErrNotFound: Listing not found
*/
func (handler *Handler) getProduct(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	product, err := handler.service.GetProduct(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

/*
POST /api/v1/products.

Description: Creates a new listing owned by the authenticated caller.

Request:
  - Body: createProductRequest (Title, Description, ImageURL)

Response:
  - 201: Product: Created listing
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: No session cookie presented
*/
func (handler *Handler) createProduct(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createProductRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldDescription, input.Description).
		Required(FieldImageURL, input.ImageURL)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.CreateProduct(request.Context(), userID, CreateInput{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, product)
}

/*
PATCH /api/v1/products/{id}.

Description: Partially updates a listing. Only the owner may modify it.

Request:
  - Body: updateProductRequest (any subset of Title, Description, ImageURL)

Response:
  - 200: Product: Updated listing
  - 403: ErrForbidden: Caller does not own the listing
  - 404: ErrNotFound: Listing not found
*/
func (handler *Handler) updateProduct(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProductRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != "" {
		validator.MaxLen(FieldTitle, input.Title, 200)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product, err := handler.service.UpdateProduct(request.Context(), userID, requestutil.ID(request, "id"), UpdateInput{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

/*
DELETE /api/v1/products/{id}.

Description: Permanently removes a listing and its comments. Only the owner
may delete it.

Response:
  - 204: No Content: Listing removed
  - 403: ErrForbidden: Caller does not own the listing
  - 404: ErrNotFound: Listing not found
*/
func (handler *Handler) deleteProduct(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteProduct(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
