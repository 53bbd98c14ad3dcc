package migrations

import (
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/catfo435/auctionarena/internal/shared/db"
	"github.com/catfo435/auctionarena/internal/shared/logger"
)

var log = logger.GetLogger()

// RunMigrations applies all pending schema migrations. Already-applied
// migrations are a no-op.
func RunMigrations() error {
	dbURL := db.BuildPostgresDSN()
	log.Info("Running schema migrations", zap.String("source", "internal/shared/db/migrations/sql"))

	m, err := migrate.New(
		"file://internal/shared/db/migrations/sql",
		dbURL,
	)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
