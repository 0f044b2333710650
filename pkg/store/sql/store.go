package sql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	_ "github.com/databricks/databricks-sql-go"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/snowflakedb/gosnowflake"

	"github.com/de-tools/cart-report/pkg/models/domain"
	"github.com/de-tools/cart-report/pkg/store/duckdb"
	"github.com/de-tools/cart-report/pkg/store/query"
)

var ErrUnknownDriver = errors.New("unknown store driver")

// Store executes report statements built by the query package.
type Store interface {
	Select(ctx context.Context, dest any, stmt query.Statement) error
	Get(ctx context.Context, dest any, stmt query.Statement) error
	Count(ctx context.Context, stmt query.Statement) (int64, error)
	Close() error
}

type sqlStore struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &sqlStore{db: db}, nil
}

// Open connects to the database described by profile. Network drivers are pinged so a
// bad DSN fails here rather than on the first report query.
func Open(ctx context.Context, profile domain.StoreProfile) (*sqlx.DB, error) {
	switch profile.Driver {
	case domain.StoreDriverDuckDB:
		db, err := duckdb.NewDB(duckdb.Settings{
			DbPath:      profile.DSN,
			TablePrefix: profile.TablePrefix,
			Bootstrap:   profile.Bootstrap,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open duckdb %q: %w", profile.DSN, err)
		}
		return sqlx.NewDb(db, string(domain.StoreDriverDuckDB)), nil
	case domain.StoreDriverPostgres,
		domain.StoreDriverPgx,
		domain.StoreDriverMySQL,
		domain.StoreDriverSnowflake,
		domain.StoreDriverDatabricks:
		db, err := sqlx.Open(string(profile.Driver), profile.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s store: %w", profile.Driver, err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to reach %s store: %w", profile.Driver, err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, profile.Driver)
	}
}

func (s *sqlStore) Select(ctx context.Context, dest any, stmt query.Statement) error {
	q, args, err := s.bind(ctx, stmt)
	if err != nil {
		return err
	}
	if err := s.db.SelectContext(ctx, dest, q, args...); err != nil {
		return fmt.Errorf("%s query failed: %w", stmt.Name, err)
	}
	return nil
}

func (s *sqlStore) Get(ctx context.Context, dest any, stmt query.Statement) error {
	q, args, err := s.bind(ctx, stmt)
	if err != nil {
		return err
	}
	if err := s.db.GetContext(ctx, dest, q, args...); err != nil {
		return fmt.Errorf("%s query failed: %w", stmt.Name, err)
	}
	return nil
}

func (s *sqlStore) Count(ctx context.Context, stmt query.Statement) (int64, error) {
	var total int64
	if err := s.Get(ctx, &total, stmt); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

// bind expands :name placeholders and rewrites them into the driver's bindvar style.
func (s *sqlStore) bind(ctx context.Context, stmt query.Statement) (string, []any, error) {
	q, args, err := sqlx.Named(stmt.SQL, stmt.Params)
	if err != nil {
		return "", nil, fmt.Errorf("failed to bind %s query: %w", stmt.Name, err)
	}
	q = s.db.Rebind(q)

	zerolog.Ctx(ctx).Debug().
		Str("statement", stmt.Name).
		Int("params", len(args)).
		Msg("executing report query")

	return q, args, nil
}
