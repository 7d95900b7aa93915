package repomanager

import (
	"context"
	"database/sql"

	"github.com/sooldama/sooldama/internal/dbx"
	"github.com/sooldama/sooldama/internal/server/repositories/products"
	"github.com/sooldama/sooldama/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Products(db dbx.DBTX) products.Repository
}
