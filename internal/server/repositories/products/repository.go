package products

import (
	"context"

	"github.com/sooldama/sooldama/internal/server/models"
)

// Repository reads the product catalog.
type Repository interface {
	// SelectProducts returns up to limit products ordered by id, skipping
	// offset rows. A nil categoryID means every category.
	SelectProducts(ctx context.Context, offset, limit int, categoryID *int64) ([]*models.Product, error)
	SelectProductByID(ctx context.Context, id int64) (*models.Product, error)
}
