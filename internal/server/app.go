// Package server initializes and runs the shop backend: it opens the
// database, applies migrations, builds the services and runs the HTTP API
// next to the gRPC health endpoint until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sooldama/sooldama/internal/logging"
	"github.com/sooldama/sooldama/internal/server/auth"
	"github.com/sooldama/sooldama/internal/server/config"
	gs "github.com/sooldama/sooldama/internal/server/grpc"
	"github.com/sooldama/sooldama/internal/server/httpapi"
	"github.com/sooldama/sooldama/internal/server/repositories/repomanager"
	"github.com/sooldama/sooldama/internal/server/services"
)

// runner is anything with a blocking Run that returns when ctx is done.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	httpServer runner
	grpcServer runner
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migrations error: %w", err)
	}

	gate := auth.NewGate(c.AuthSessionKey)
	hasher := auth.NewBcryptHasher(c.BcryptCost)

	us := services.NewUserService(db, rm, gate, hasher, logger)
	ps := services.NewProductService(db, rm, services.NewImageSigner(c), logger)

	store, err := httpapi.NewSessionStore(c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	router := httpapi.NewRouter(c, store, logger, gate, us, ps)

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		httpServer: httpapi.NewServer(c.HTTPAddr, router, logger),
		grpcServer: gs.NewGRPCServer(c.GRPCHealthAddr, logger, db, c.HealthCheckInterval),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// serve runs r and cancels the shared context if it fails, so the other
// server stops too.
func (app *App) serve(ctx context.Context, cancelFunc context.CancelFunc, name string, r runner) {
	if err := r.Run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "http", app.httpServer)
	}()
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "grpc", app.grpcServer)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
