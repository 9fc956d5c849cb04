package db

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/samber/oops"

	"github.com/udisondev/auracore/internal/db/migrations"
)

// RunMigrations runs goose migrations on the given DSN.
func RunMigrations(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return oops.Code("DB_MIGRATE").Wrapf(err, "opening sql connection for migrations")
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return oops.Code("DB_MIGRATE").Wrapf(err, "setting goose dialect")
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return oops.Code("DB_MIGRATE").Wrapf(err, "running migrations")
	}
	return nil
}
