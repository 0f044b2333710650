// Package migrations creates the cart and account tables on a fresh PostgreSQL
// database, for local development and integration tests.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/de-tools/cart-report/pkg/models/domain"
)

// TablePrefix is the prefix baked into the embedded migration files.
const TablePrefix = "mdl_"

var (
	ErrUnsupportedDriver = errors.New("migrations are only available for postgres stores")
	ErrUnsupportedPrefix = errors.New("migrations only create " + TablePrefix + " tables")
)

//go:embed sql/*.sql
var files embed.FS

// Up applies every pending migration. It is a no-op on an up-to-date database.
func Up(db *sql.DB, profile domain.StoreProfile) error {
	m, err := newMigrate(db, profile)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

// Down reverts every applied migration.
func Down(db *sql.DB, profile domain.StoreProfile) error {
	m, err := newMigrate(db, profile)
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not revert migrations: %w", err)
	}
	return nil
}

func newMigrate(db *sql.DB, profile domain.StoreProfile) (*migrate.Migrate, error) {
	if profile.Driver != domain.StoreDriverPostgres && profile.Driver != domain.StoreDriverPgx {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, profile.Driver)
	}
	if profile.TablePrefix != TablePrefix {
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedPrefix, profile.TablePrefix)
	}

	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("could not open embedded migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: TablePrefix + "cart_report_migrations",
	})
	if err != nil {
		return nil, fmt.Errorf("could not create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}
