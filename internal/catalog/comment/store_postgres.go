// Copyright (c) 2026 Vendora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vendora/internal/platform/apperr"
	"github.com/taibuivan/vendora/internal/platform/dberr"
)

// # Postgres Repository

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the comment Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
List returns a page of comments ordered by creation time, newest first.

Description: An empty filter lists everything; a ProductID narrows the page
to one listing. The author's display name is joined in.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Comment: Hydrated comments
  - int: Total comment count matching the filter
  - error: Retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Comment, int, error) {
	const query = `
		SELECT c.id, c.productid, c.ownerid, c.content, c.createdat, c.updatedat,
		       a.name,
		       COUNT(*) OVER() AS total
		FROM market.comment c
		JOIN users.account a ON a.id = c.ownerid
		WHERE ($1 = '' OR c.productid::text = $1)
		ORDER BY c.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(context, query, filter.ProductID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var (
		comments []*Comment
		total    int
	)

	for rows.Next() {
		comment := &Comment{}
		if err := rows.Scan(
			&comment.ID,
			&comment.ProductID,
			&comment.OwnerID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
			&comment.OwnerName,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("postgres_comment_repo_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_comment_repo_rows_failed: %w", err)
	}

	return comments, total, nil
}

/*
FindByID retrieves a comment by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Comment: Hydrated entity including the author's display name
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	const query = `
		SELECT c.id, c.productid, c.ownerid, c.content, c.createdat, c.updatedat, a.name
		FROM market.comment c
		JOIN users.account a ON a.id = c.ownerid
		WHERE c.id = $1`

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID,
		&comment.ProductID,
		&comment.OwnerID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
		&comment.OwnerName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Comment not found")
		}
		return nil, fmt.Errorf("postgres_comment_repo_find_by_id_failed: %w", err)
	}

	return comment, nil
}

/*
Create persists a new comment into the market.comment table.

Description: The foreign key to market.product is authoritative for target
existence; a violation maps to NotFound on the product rather than a 500.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: apperr.NotFound (unknown product) or persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO market.comment (id, productid, ownerid, content, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		comment.ID,
		comment.ProductID,
		comment.OwnerID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)

	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.NotFound("Product not found")
		}
		return fmt.Errorf("postgres_comment_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update persists a change to a comment's content.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: Update failures
*/
func (repository *PostgresRepository) Update(context context.Context, comment *Comment) error {
	const query = `
		UPDATE market.comment
		SET content = $2, updatedat = $3
		WHERE id = $1`

	comment.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query, comment.ID, comment.Content, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_update_failed: %w", err)
	}

	return nil
}

/*
Delete permanently removes a comment.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound when the comment is absent, or deletion failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = "DELETE FROM market.comment WHERE id = $1"

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_comment_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment not found")
	}

	return nil
}
