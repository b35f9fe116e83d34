// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
HTTP interface for reading and managing listing commentary.

# Routing Strategy

  - Public: Reads are open to all visitors, with an optional product filter.
  - Gated: Mutations sit behind the session authentication gate; the service
    layer enforces authorship on update and delete.
*/

package comment

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

// Handler implements the HTTP layer for comments.
type Handler struct {
	service  *Service
	resolver middleware.SessionResolver
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service, resolver middleware.SessionResolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

// Routes returns a [chi.Router] configured with the comment domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Reads
	router.Get("/", handler.listComments)
	router.Get("/{id}", handler.getComment)

	// ## Authoring (Session Gated)
	router.Group(func(gated chi.Router) {
		gated.Use(middleware.Authenticate(handler.resolver))

		gated.Post("/", handler.createComment)
		gated.Put("/{id}", handler.updateComment)
		gated.Delete("/{id}", handler.deleteComment)
	})

	return router
}

// # Request Payloads

type createCommentRequest struct {
	ProductID string `json:"product_id"`
	Content   string `json:"content"`
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

// # Endpoints

/*
GET /api/v1/comments.

Description: Retrieves a paginated list of comments, optionally narrowed to a
single product.

Request:
  - product_id: string (Optional filter)
  - limit: int
  - page: int

Response:
  - 200: []Comment: Paginated list of comments
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		ProductID: request.URL.Query().Get("product_id"),
	}

	comments, total, err := handler.service.ListComments(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/comments/{id}.

Response:
  - 200: Comment: Success
  - 404: ErrNotFound: Comment not found
*/
func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	comment, err := handler.service.GetComment(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
POST /api/v1/comments.

Description: Attaches a new comment to a listing, authored by the caller.

Request:
  - Body: createCommentRequest (ProductID, Content)

Response:
  - 201: Comment: Created comment
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 404: ErrNotFound: Target product does not exist
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldProductID, input.ProductID).
		UUID(FieldProductID, input.ProductID).
		Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, 2000)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), userID, input.ProductID, input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
PUT /api/v1/comments/{id}.

Description: Replaces a comment's content. Only the author may modify it.

Request:
  - Body: updateCommentRequest (Content)

Response:
  - 200: Comment: Updated comment
  - 403: ErrForbidden: Caller is not the author
  - 404: ErrNotFound: Comment not found
*/
func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, input.Content).
		MaxLen(FieldContent, input.Content, 2000)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.UpdateComment(request.Context(), userID, requestutil.ID(request, "id"), input.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

/*
DELETE /api/v1/comments/{id}.

Description: Permanently removes a comment. Only the author may delete it.

Response:
  - 204: No Content: Comment removed
  - 403: ErrForbidden: Caller is not the author
  - 404: ErrNotFound: Comment not found
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
