package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/nardonidigital/agency-api/internal/bootstrap"
	"github.com/nardonidigital/agency-api/internal/devseed"
	"github.com/nardonidigital/agency-api/internal/ports"
	"github.com/nardonidigital/agency-api/internal/service"
)

func newAuthService(provider ports.IdentityProvider, logger *slog.Logger) *service.AuthService {
	return service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		Logger:   logger,
	})
}

func connectDB(cmdCtx *commandContext) (*sql.DB, error) {
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig:    cmdCtx.Config.Postgres,
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	return db, nil
}

func runMigrate(cmdCtx *commandContext, _ []string) error {
	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx, db)

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultMigrationTimeout)
	defer cancel()

	return bootstrap.RunMigrations(ctx, db, cmdCtx.Logger)
}

func runDBSeed(cmdCtx *commandContext, _ []string) error {
	db, err := connectDB(cmdCtx)
	if err != nil {
		return err
	}
	defer closeDB(cmdCtx, db)

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, defaultMigrationTimeout)
	defer cancel()

	if err := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); err != nil {
		return err
	}
	return devseed.Run(ctx, devseed.NewServices(db), cmdCtx.Logger)
}

func closeDB(cmdCtx *commandContext, db *sql.DB) {
	if err := db.Close(); err != nil {
		cmdCtx.Logger.ErrorContext(cmdCtx.Ctx, "close database failed", "error", err)
	}
}
