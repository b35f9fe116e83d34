// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vendora/internal/platform/apperr"
)

// # Postgres Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the product Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
List returns a page of listings ordered by creation time, newest first.

Description: Joins the owning account so each listing carries the owner's
display name and email without a second query.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []*Product: Hydrated listings
  - int: Total listing count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Product, int, error) {
	const query = `
		SELECT p.id, p.ownerid, p.title, p.slug, p.description, p.imageurl,
		       p.createdat, p.updatedat, a.name, a.email,
		       COUNT(*) OVER() AS total
		FROM market.product p
		JOIN users.account a ON a.id = p.ownerid
		ORDER BY p.createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var (
		products []*Product
		total    int
	)

	for rows.Next() {
		product := &Product{}
		if err := rows.Scan(
			&product.ID,
			&product.OwnerID,
			&product.Title,
			&product.Slug,
			&product.Description,
			&product.ImageURL,
			&product.CreatedAt,
			&product.UpdatedAt,
			&product.OwnerName,
			&product.OwnerEmail,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_product_repo_scan_failed: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_rows_failed: %w", err)
	}

	return products, total, nil
}

/*
FindByID retrieves a listing by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Product: Hydrated entity including owner display fields
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Product, error) {
	const query = `
		SELECT p.id, p.ownerid, p.title, p.slug, p.description, p.imageurl,
		       p.createdat, p.updatedat, a.name, a.email
		FROM market.product p
		JOIN users.account a ON a.id = p.ownerid
		WHERE p.id = $1`

	product := &Product{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&product.ID,
		&product.OwnerID,
		&product.Title,
		&product.Slug,
		&product.Description,
		&product.ImageURL,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.OwnerName,
		&product.OwnerEmail,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, fmt.Errorf("postgres_product_repo_find_by_id_failed: %w", err)
	}

	return product, nil
}

/*
Create persists a new listing into the market.product table.

Parameters:
  - context: context.Context
  - product: *Product

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, product *Product) error {
	const query = `
		INSERT INTO market.product (
			id, ownerid, title, slug, description, imageurl, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		product.ID,
		product.OwnerID,
		product.Title,
		product.Slug,
		product.Description,
		product.ImageURL,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_product_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update persists changes to a listing's mutable fields.

Parameters:
  - context: context.Context
  - product: *Product

Returns:
  - error: Update failures
*/
func (repository *PostgresRepository) Update(context context.Context, product *Product) error {
	const query = `
		UPDATE market.product
		SET title = $2, slug = $3, description = $4, imageurl = $5, updatedat = $6
		WHERE id = $1`

	product.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		product.ID,
		product.Title,
		product.Slug,
		product.Description,
		product.ImageURL,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_product_repo_update_failed: %w", err)
	}

	return nil
}

/*
Delete permanently removes a listing. Comments cascade via the foreign key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound when the listing is absent, or deletion failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM market.product WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_product_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Product not found")
	}

	return nil
}
