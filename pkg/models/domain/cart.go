package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CartStatus is the lifecycle code persisted in the cart table.
type CartStatus int

const (
	CartStatusPending   CartStatus = 0
	CartStatusCheckout  CartStatus = 10
	CartStatusCanceled  CartStatus = 70
	CartStatusDelivered CartStatus = 90
)

var cartStatusNames = map[CartStatus]string{
	CartStatusPending:   "pending",
	CartStatusCheckout:  "checkout",
	CartStatusCanceled:  "canceled",
	CartStatusDelivered: "delivered",
}

// CartStatuses lists the known statuses in lifecycle order.
func CartStatuses() []CartStatus {
	return []CartStatus{CartStatusPending, CartStatusCheckout, CartStatusDelivered, CartStatusCanceled}
}

func (s CartStatus) String() string {
	if name, ok := cartStatusNames[s]; ok {
		return name
	}
	return strconv.Itoa(int(s))
}

func (s CartStatus) Valid() bool {
	_, ok := cartStatusNames[s]
	return ok
}

// ParseCartStatus accepts either the status name or its numeric code.
func ParseCartStatus(v string) (CartStatus, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return 0, false
	}
	for status, name := range cartStatusNames {
		if name == v {
			return status, true
		}
	}
	code, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	status := CartStatus(code)
	return status, status.Valid()
}

// Cart is one cart row joined with its owning account.
type Cart struct {
	ID            int64
	UserID        int64
	Status        CartStatus
	Currency      string // empty when unset
	Price         decimal.NullDecimal
	Payable       decimal.NullDecimal
	CouponID      *int64
	CouponCode    string
	CouponUsageID *int64
	CheckoutAt    *time.Time // nil until delivery
	CreatedAt     time.Time
	CreatedBy     int64
	UpdatedAt     *time.Time
	UpdatedBy     *int64

	Username  string
	Email     string
	FirstName string
	LastName  string
}
