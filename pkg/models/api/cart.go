package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	ProfileURL  string `json:"profile_url,omitempty"`
}

type Cart struct {
	ID                int64               `json:"id"`
	UserID            int64               `json:"user_id"`
	Status            string              `json:"status"`
	StatusCode        int                 `json:"status_code"`
	Currency          string              `json:"currency"`
	Price             decimal.NullDecimal `json:"price"`
	Payable           decimal.NullDecimal `json:"payable"`
	Discount          decimal.NullDecimal `json:"discount"`
	FormattedPrice    string              `json:"formatted_price"`
	FormattedPayable  string              `json:"formatted_payable"`
	FormattedDiscount *string             `json:"formatted_discount,omitempty"`
	CouponCode        string              `json:"coupon_code,omitempty"`
	CheckoutAt        *time.Time          `json:"checkout_at"`
	CreatedAt         time.Time           `json:"created_at"`
	ViewURL           string              `json:"view_url,omitempty"`
	Buyer             User                `json:"buyer"`
}

type SortLink struct {
	Field     string            `json:"field"`
	Active    bool              `json:"active"`
	Direction string            `json:"direction,omitempty"`
	Params    map[string]string `json:"params"`
}

type Pagination struct {
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
	Size  int    `json:"size"`
	Begin int64  `json:"begin"`
	End   int64  `json:"end"`
	Total int64  `json:"total"`
	Info  string `json:"info,omitempty"`
}

type CartSearchResponse struct {
	Carts      []Cart            `json:"carts"`
	Pagination Pagination        `json:"pagination"`
	Columns    []SortLink        `json:"columns"`
	Params     map[string]string `json:"params"`
	Empty      bool              `json:"empty"`
	Message    string            `json:"message,omitempty"`
}

type PayableTotal struct {
	Currency  string          `json:"currency"`
	Payable   decimal.Decimal `json:"payable"`
	Formatted string          `json:"formatted"`
}

type TotalsResponse struct {
	Label   string         `json:"label"`
	Totals  []PayableTotal `json:"totals"`
	Empty   bool           `json:"empty"`
	Message string         `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
