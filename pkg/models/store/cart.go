package store

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// CartRow is the projection returned by the rows statement. Timestamps are unix
// seconds as persisted by the cart plugin.
type CartRow struct {
	ID            int64               `db:"id"`
	UserID        int64               `db:"user_id"`
	Status        int64               `db:"status"`
	Currency      sql.NullString      `db:"currency"`
	Price         decimal.NullDecimal `db:"price"`
	Payable       decimal.NullDecimal `db:"payable"`
	CouponID      sql.NullInt64       `db:"coupon_id"`
	CouponCode    sql.NullString      `db:"coupon_code"`
	CouponUsageID sql.NullInt64       `db:"coupon_usage_id"`
	CheckoutAt    sql.NullInt64       `db:"checkout_at"`
	CreatedAt     int64               `db:"created_at"`
	CreatedBy     int64               `db:"created_by"`
	UpdatedAt     sql.NullInt64       `db:"updated_at"`
	UpdatedBy     sql.NullInt64       `db:"updated_by"`
	Username      string              `db:"username"`
	Email         string              `db:"email"`
	FirstName     string              `db:"first_name"`
	LastName      string              `db:"last_name"`
}

// PayableTotalRow is one group of the per-currency sum statement.
type PayableTotalRow struct {
	Currency sql.NullString      `db:"currency"`
	Payable  decimal.NullDecimal `db:"payable"`
}

type UserRow struct {
	ID        int64  `db:"id"`
	Username  string `db:"username"`
	Email     string `db:"email"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
}
