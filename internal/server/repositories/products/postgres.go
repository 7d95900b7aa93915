package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sooldama/sooldama/internal/common"
	"github.com/sooldama/sooldama/internal/dbx"
	"github.com/sooldama/sooldama/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SelectProducts(ctx context.Context, offset, limit int, categoryID *int64) ([]*models.Product, error) {
	query :=
		`SELECT id, product_category_id, name, price, image_url, description, abv::float8, capacity, created_at
		 FROM products
		 WHERE ($3::bigint IS NULL OR product_category_id = $3)
		 ORDER BY id
		 LIMIT $1 OFFSET $2
		 `

	rows, err := r.db.QueryContext(ctx, query, limit, offset, categoryID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Product, 0, limit)
	for rows.Next() {
		p := &models.Product{}
		if err := scanProduct(rows, p); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) SelectProductByID(ctx context.Context, id int64) (*models.Product, error) {
	query :=
		`SELECT id, product_category_id, name, price, image_url, description, abv::float8, capacity, created_at
		 FROM products
		 WHERE id = $1
		 `

	p := &models.Product{}
	if err := scanProduct(r.db.QueryRowContext(ctx, query, id), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner, p *models.Product) error {
	return s.Scan(&p.ID, &p.ProductCategoryID, &p.Name, &p.Price,
		&p.ImageURL, &p.Description, &p.Abv, &p.Capacity, &p.CreatedAt)
}
