package adapters

import (
	"database/sql"
	"strings"
	"time"

	"github.com/de-tools/cart-report/pkg/models/domain"
	"github.com/de-tools/cart-report/pkg/models/store"
)

func MapStoreCartRowToDomain(row store.CartRow) domain.Cart {
	return domain.Cart{
		ID:            row.ID,
		UserID:        row.UserID,
		Status:        domain.CartStatus(row.Status),
		Currency:      strings.TrimSpace(row.Currency.String),
		Price:         row.Price,
		Payable:       row.Payable,
		CouponID:      nullInt64(row.CouponID),
		CouponCode:    row.CouponCode.String,
		CouponUsageID: nullInt64(row.CouponUsageID),
		CheckoutAt:    nullUnix(row.CheckoutAt),
		CreatedAt:     time.Unix(row.CreatedAt, 0).UTC(),
		CreatedBy:     row.CreatedBy,
		UpdatedAt:     nullUnix(row.UpdatedAt),
		UpdatedBy:     nullInt64(row.UpdatedBy),
		Username:      row.Username,
		Email:         row.Email,
		FirstName:     row.FirstName,
		LastName:      row.LastName,
	}
}

func MapStoreCartRowsToDomain(rows []store.CartRow) []domain.Cart {
	carts := make([]domain.Cart, 0, len(rows))
	for _, row := range rows {
		carts = append(carts, MapStoreCartRowToDomain(row))
	}
	return carts
}

// MapStoreUserRowToDomain builds an identity without a profile link; callers that know
// the link pattern fill it in.
func MapStoreUserRowToDomain(row store.UserRow) domain.Identity {
	return domain.Identity{
		UserID:      row.ID,
		Username:    row.Username,
		Email:       row.Email,
		DisplayName: DisplayName(row.FirstName, row.LastName, row.Username),
	}
}

// DisplayName joins first and last name, falling back to the username.
func DisplayName(first, last, username string) string {
	name := strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
	if name == "" {
		return username
	}
	return name
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullUnix(v sql.NullInt64) *time.Time {
	if !v.Valid || v.Int64 == 0 {
		return nil
	}
	t := time.Unix(v.Int64, 0).UTC()
	return &t
}
