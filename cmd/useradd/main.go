package main

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sooldama/sooldama/internal/logging"
	"github.com/sooldama/sooldama/internal/server/auth"
	"github.com/sooldama/sooldama/internal/server/config"
	"github.com/sooldama/sooldama/internal/server/repositories/repomanager"
	"github.com/sooldama/sooldama/internal/server/services"
	"github.com/sooldama/sooldama/internal/useradd"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	opts, err := useradd.ParseOptions(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("db migrations error: %v", err)
	}

	logger := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)
	us := services.NewUserService(db, rm, auth.NewGate(cfg.AuthSessionKey), auth.NewBcryptHasher(cfg.BcryptCost), logger)

	if err := useradd.Run(ctx, opts, bufio.NewReader(os.Stdin), os.Stdout, us); err != nil {
		log.Fatalf("%v", err)
	}

}
