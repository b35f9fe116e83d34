// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vendora/internal/catalog/comment"
	"github.com/taibuivan/vendora/internal/platform/apperr"
)

// memRepo is an in-memory comment Repository. Product existence is modelled
// with a known-products set, standing in for the foreign key.
type memRepo struct {
	mu       sync.Mutex
	comments map[string]*comment.Comment
	products map[string]bool
}

func newMemRepo(productIDs ...string) *memRepo {
	known := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		known[id] = true
	}
	return &memRepo{
		comments: make(map[string]*comment.Comment),
		products: known,
	}
}

func (r *memRepo) List(_ context.Context, filter comment.Filter, limit, offset int) ([]*comment.Comment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*comment.Comment, 0, len(r.comments))
	for _, c := range r.comments {
		if filter.ProductID != "" && c.ProductID != filter.ProductID {
			continue
		}
		copied := *c
		matched = append(matched, &copied)
	}
	total := len(matched)
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, apperr.NotFound("Comment not found")
}

func (r *memRepo) Create(_ context.Context, c *comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.products[c.ProductID] {
		return apperr.NotFound("Product not found")
	}
	copied := *c
	r.comments[c.ID] = &copied
	return nil
}

func (r *memRepo) Update(_ context.Context, c *comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *c
	r.comments[c.ID] = &copied
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return apperr.NotFound("Comment not found")
	}
	delete(r.comments, id)
	return nil
}

func newTestService(productIDs ...string) (*comment.Service, *memRepo) {
	repo := newMemRepo(productIDs...)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return comment.NewService(repo, logger), repo
}

/*
TestCreateComment attaches a comment to an existing product and rejects an
unknown product with 404.
*/
func TestCreateComment(t *testing.T) {
	service, repo := newTestService("product-1")

	created, err := service.CreateComment(context.Background(), "author-1", "product-1", "Lovely bike!")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "author-1", created.OwnerID)
	assert.Len(t, repo.comments, 1)

	_, err = service.CreateComment(context.Background(), "author-1", "ghost-product", "Anyone there?")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestUpdateComment_OwnershipGuard verifies existence-before-ownership: missing
comments answer 404, foreign comments answer 403 — never the other way round.
*/
func TestUpdateComment_OwnershipGuard(t *testing.T) {
	service, _ := newTestService("product-1")

	created, err := service.CreateComment(context.Background(), "author-1", "product-1", "Lovely bike!")
	require.NoError(t, err)

	_, err = service.UpdateComment(context.Background(), "intruder", "no-such-id", "hijack")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.UpdateComment(context.Background(), "intruder", created.ID, "hijack")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	updated, err := service.UpdateComment(context.Background(), "author-1", created.ID, "Even lovelier on second look.")
	require.NoError(t, err)
	assert.Equal(t, "Even lovelier on second look.", updated.Content)
}

/*
TestDeleteComment_OwnershipGuard mirrors the update guard for deletion.
*/
func TestDeleteComment_OwnershipGuard(t *testing.T) {
	service, repo := newTestService("product-1")

	created, err := service.CreateComment(context.Background(), "author-1", "product-1", "Lovely bike!")
	require.NoError(t, err)

	err = service.DeleteComment(context.Background(), "intruder", created.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	assert.Len(t, repo.comments, 1)

	require.NoError(t, service.DeleteComment(context.Background(), "author-1", created.ID))
	assert.Empty(t, repo.comments)
}

/*
TestListComments_ProductFilter narrows the listing to one product.
*/
func TestListComments_ProductFilter(t *testing.T) {
	service, _ := newTestService("product-1", "product-2")

	_, err := service.CreateComment(context.Background(), "author-1", "product-1", "First")
	require.NoError(t, err)
	_, err = service.CreateComment(context.Background(), "author-1", "product-2", "Second")
	require.NoError(t, err)

	all, total, err := service.ListComments(context.Background(), comment.Filter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)

	filtered, total, err := service.ListComments(context.Background(), comment.Filter{ProductID: "product-2"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Second", filtered[0].Content)
}
