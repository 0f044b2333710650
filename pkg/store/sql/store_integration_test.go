//go:build integration

package sql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/de-tools/cart-report/pkg/models/domain"
	"github.com/de-tools/cart-report/pkg/models/store"
	"github.com/de-tools/cart-report/pkg/store/migrations"
	"github.com/de-tools/cart-report/pkg/store/query"
)

func setupPostgres(t *testing.T, driver domain.StoreDriver) Store {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("moodle"),
		postgres.WithUsername("moodle"),
		postgres.WithPassword("moodle"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	profile := domain.StoreProfile{
		Name:        "integration",
		Driver:      driver,
		DSN:         dsn,
		TablePrefix: migrations.TablePrefix,
	}

	db, err := Open(ctx, profile)
	require.NoError(t, err)
	require.NoError(t, migrations.Up(db.DB, profile))

	db.MustExec(`INSERT INTO mdl_user (id, username, email, firstname, lastname) VALUES
		(1, 'jdoe', 'jdoe@example.com', 'Jane', 'Doe')`)
	db.MustExec(`INSERT INTO mdl_enrol_cart (id, user_id, status, currency, price, payable, checkout_at, created_at, created_by) VALUES
		(10, 1, 90, 'USD', 100, 80.5, 1710460800, 1710400000, 1),
		(11, 1, 90, 'USD', 30, 19.5, 1710547200, 1710400000, 1),
		(12, 1, 0, 'EUR', 10, 10, NULL, 1710400000, 1)`)

	s, err := NewStore(db)
	require.NoError(t, err)
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestPostgresStore(t *testing.T) {
	for _, driver := range []domain.StoreDriver{domain.StoreDriverPostgres, domain.StoreDriverPgx} {
		t.Run(string(driver), func(t *testing.T) {
			s := setupPostgres(t, driver)
			ctx := context.Background()

			tables, err := query.NewTables(migrations.TablePrefix)
			require.NoError(t, err)
			b := query.NewBuilder(tables, time.UTC)

			from := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
			filter := domain.FilterCriteria{From: &from}

			total, err := s.Count(ctx, b.Count(filter))
			require.NoError(t, err)
			assert.Equal(t, int64(2), total)

			var rows []store.CartRow
			err = s.Select(ctx, &rows, b.Rows(filter, domain.DefaultSort(), domain.NewPageSpec(0)))
			require.NoError(t, err)
			require.Len(t, rows, 2)
			assert.Equal(t, int64(11), rows[0].ID)

			var totals []store.PayableTotalRow
			err = s.Select(ctx, &totals, b.PayableTotals(filter))
			require.NoError(t, err)
			require.Len(t, totals, 1)
			assert.Equal(t, "USD", totals[0].Currency.String)
			assert.Equal(t, "100", totals[0].Payable.Decimal.String())
		})
	}
}
