package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sooldama/sooldama/internal/common"
	"github.com/sooldama/sooldama/internal/logging"
	"github.com/sooldama/sooldama/internal/server/models"
	"github.com/sooldama/sooldama/internal/server/repositories/repomanager"
)

// ProductQuery selects a page of the catalog. CategoryID nil means all.
type ProductQuery struct {
	Offset     int
	Limit      int
	CategoryID *int64
}

type ProductResponse struct {
	ID                int64   `json:"id"`
	ProductCategoryID int64   `json:"productCategoryId"`
	Name              string  `json:"name"`
	Price             int     `json:"price"`
	ImageURL          string  `json:"imageUrl"`
	Description       string  `json:"description"`
	Abv               float64 `json:"abv"`
	Capacity          int     `json:"capacity"`
}

type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ImageResolver
	logger      logging.Logger
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager, images ImageResolver, logger logging.Logger) *ProductService {
	return &ProductService{
		db:          db,
		repomanager: m,
		images:      images,
		logger:      logger.With("module", "services.product"),
	}
}

// GetProducts returns one page of products ordered by id. The result is
// never nil.
func (s *ProductService) GetProducts(ctx context.Context, q ProductQuery) ([]ProductResponse, error) {
	list, err := s.repomanager.Products(s.db).SelectProducts(ctx, q.Offset, q.Limit, q.CategoryID)
	if err != nil {
		s.logger.Error(ctx, "select products failed", "error", err)
		return nil, common.ErrorInternal
	}

	result := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		result = append(result, s.toResponse(ctx, p))
	}
	return result, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*ProductResponse, error) {
	p, err := s.repomanager.Products(s.db).SelectProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrProductNotFound
		}
		s.logger.Error(ctx, "select product failed", "id", id, "error", err)
		return nil, common.ErrorInternal
	}

	r := s.toResponse(ctx, p)
	return &r, nil
}

// toResponse falls back to the stored image reference when it cannot be
// signed; a missing picture should not hide the product.
func (s *ProductService) toResponse(ctx context.Context, p *models.Product) ProductResponse {
	image := p.ImageURL
	if s.images != nil {
		url, err := s.images.Resolve(ctx, p.ImageURL)
		if err != nil {
			s.logger.Warn(ctx, "image presign failed", "id", p.ID, "error", err)
		} else {
			image = url
		}
	}

	return ProductResponse{
		ID:                p.ID,
		ProductCategoryID: p.ProductCategoryID,
		Name:              p.Name,
		Price:             p.Price,
		ImageURL:          image,
		Description:       p.Description,
		Abv:               p.Abv,
		Capacity:          p.Capacity,
	}
}
