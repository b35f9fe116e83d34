// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/vendora/internal/catalog/product"
	"github.com/taibuivan/vendora/internal/platform/apperr"
)

// memRepo is an in-memory product Repository for service tests.
type memRepo struct {
	mu       sync.Mutex
	products map[string]*product.Product
}

func newMemRepo() *memRepo {
	return &memRepo{products: make(map[string]*product.Product)}
}

func (r *memRepo) List(_ context.Context, limit, offset int) ([]*product.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*product.Product, 0, len(r.products))
	for _, p := range r.products {
		copied := *p
		all = append(all, &copied)
	}
	total := len(all)
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, apperr.NotFound("Product not found")
}

func (r *memRepo) Create(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *p
	r.products[p.ID] = &copied
	return nil
}

func (r *memRepo) Update(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *p
	r.products[p.ID] = &copied
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return apperr.NotFound("Product not found")
	}
	delete(r.products, id)
	return nil
}

func newTestService() (*product.Service, *memRepo) {
	repo := newMemRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return product.NewService(repo, logger), repo
}

/*
TestCreateProduct generates identity and slug and records the caller as owner.
*/
func TestCreateProduct(t *testing.T) {
	service, repo := newTestService()

	created, err := service.CreateProduct(context.Background(), "owner-1", product.CreateInput{
		Title:       "Vintage Road Bike",
		Description: "Steel frame, 1987.",
		ImageURL:    "https://img.vendora.com/bike.jpg",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "owner-1", created.OwnerID)
	assert.Equal(t, "vintage-road-bike", created.Slug)
	assert.Len(t, repo.products, 1)
}

/*
TestUpdateProduct_OwnershipGuard verifies the guard ordering: a missing
listing answers 404, a foreign listing answers 403, and the owner succeeds.
*/
func TestUpdateProduct_OwnershipGuard(t *testing.T) {
	service, _ := newTestService()

	created, err := service.CreateProduct(context.Background(), "owner-1", product.CreateInput{
		Title: "Vintage Road Bike", Description: "Steel frame.", ImageURL: "https://img.vendora.com/bike.jpg",
	})
	require.NoError(t, err)

	// Missing listing → 404, even for a would-be intruder.
	_, err = service.UpdateProduct(context.Background(), "intruder", "no-such-id", product.UpdateInput{Title: "X"})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// Existing but foreign listing → 403, never 404.
	_, err = service.UpdateProduct(context.Background(), "intruder", created.ID, product.UpdateInput{Title: "Hijacked"})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// The owner's partial update lands and refreshes the slug.
	updated, err := service.UpdateProduct(context.Background(), "owner-1", created.ID, product.UpdateInput{
		Title: "Touring Bike",
	})
	require.NoError(t, err)
	assert.Equal(t, "Touring Bike", updated.Title)
	assert.Equal(t, "touring-bike", updated.Slug)
	assert.Equal(t, "Steel frame.", updated.Description)
}

/*
TestDeleteProduct_OwnershipGuard mirrors the update guard for deletion.
*/
func TestDeleteProduct_OwnershipGuard(t *testing.T) {
	service, repo := newTestService()

	created, err := service.CreateProduct(context.Background(), "owner-1", product.CreateInput{
		Title: "Vintage Road Bike", Description: "Steel frame.", ImageURL: "https://img.vendora.com/bike.jpg",
	})
	require.NoError(t, err)

	err = service.DeleteProduct(context.Background(), "intruder", created.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	assert.Len(t, repo.products, 1)

	require.NoError(t, service.DeleteProduct(context.Background(), "owner-1", created.ID))
	assert.Empty(t, repo.products)

	// Gone now: a repeat answers 404.
	err = service.DeleteProduct(context.Background(), "owner-1", created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestListProducts paginates over the repository.
*/
func TestListProducts(t *testing.T) {
	service, _ := newTestService()

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := service.CreateProduct(context.Background(), "owner-1", product.CreateInput{
			Title: title, Description: "d", ImageURL: "https://img.vendora.com/p.jpg",
		})
		require.NoError(t, err)
	}

	page, total, err := service.ListProducts(context.Background(), 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 2)
}
