package users

import (
	"context"

	"github.com/sooldama/sooldama/internal/server/models"
)

// Repository is the credential store.
type Repository interface {
	// Create inserts user and fills in ID and CreatedAt.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
