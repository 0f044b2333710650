package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

// UserTableSchema mirrors the columns the report reads from the account table.
const UserTableSchema = `
	CREATE TABLE IF NOT EXISTS %[1]suser (
		id BIGINT PRIMARY KEY,
		username VARCHAR NOT NULL,
		email VARCHAR NOT NULL DEFAULT '',
		firstname VARCHAR NOT NULL DEFAULT '',
		lastname VARCHAR NOT NULL DEFAULT ''
	);
`

// CartTableSchema mirrors the cart plugin table. Timestamps are unix seconds.
const CartTableSchema = `
	CREATE TABLE IF NOT EXISTS %[1]senrol_cart (
		id BIGINT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		status INTEGER NOT NULL DEFAULT 0,
		currency VARCHAR,
		price DOUBLE,
		payable DOUBLE,
		coupon_id BIGINT,
		coupon_code VARCHAR,
		coupon_usage_id BIGINT,
		data VARCHAR,
		checkout_at BIGINT,
		created_at BIGINT NOT NULL,
		created_by BIGINT NOT NULL,
		updated_at BIGINT,
		updated_by BIGINT
	);
`

var bootQueries = []string{
	UserTableSchema,
	CartTableSchema,
}

type Settings struct {
	DbPath      string
	TablePrefix string
	// Bootstrap creates the report tables on every new connection when missing.
	Bootstrap bool
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		if !settings.Bootstrap {
			return nil
		}

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), fmt.Sprintf(query, settings.TablePrefix), nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
