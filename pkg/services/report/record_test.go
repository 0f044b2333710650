package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/de-tools/cart-report/pkg/models/domain"
)

type stubFormatter struct{}

func (stubFormatter) FormatMoney(amount decimal.Decimal, currencyCode string) string {
	return currencyCode + " " + amount.StringFixed(2)
}

func newTestPresenter() Presenter {
	return NewPresenter(stubFormatter{}, Settings{
		DefaultCurrency: "usd",
		CartURL:         "/enrol/cart/view.php?id=%d",
		ProfileURL:      "/user/profile.php?id=%d",
		FreeLabel:       "Free",
	})
}

func amount(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func TestRecord_MoneyValues(t *testing.T) {
	p := newTestPresenter()

	tests := []struct {
		name        string
		cart        domain.Cart
		currency    string
		price       string
		payable     string
		discount    string
		hasDiscount bool
		discountSum string
	}{
		{
			name:        "discounted",
			cart:        domain.Cart{Currency: "EUR", Price: amount("100"), Payable: amount("80")},
			currency:    "EUR",
			price:       "EUR 100.00",
			payable:     "EUR 80.00",
			discount:    "EUR 20.00",
			hasDiscount: true,
			discountSum: "20",
		},
		{
			name:        "fully discounted is free",
			cart:        domain.Cart{Currency: "USD", Price: amount("100"), Payable: amount("0")},
			currency:    "USD",
			price:       "USD 100.00",
			payable:     "Free",
			discount:    "USD 100.00",
			hasDiscount: true,
			discountSum: "100",
		},
		{
			name:        "no discount",
			cart:        domain.Cart{Currency: "USD", Price: amount("15.5"), Payable: amount("15.5")},
			currency:    "USD",
			price:       "USD 15.50",
			payable:     "USD 15.50",
			discount:    "Free",
			hasDiscount: true,
			discountSum: "0",
		},
		{
			name:        "missing currency uses default",
			cart:        domain.Cart{Price: amount("10"), Payable: amount("10")},
			currency:    "USD",
			price:       "USD 10.00",
			payable:     "USD 10.00",
			discount:    "Free",
			hasDiscount: true,
			discountSum: "0",
		},
		{
			name:        "null payable",
			cart:        domain.Cart{Currency: "usd", Price: amount("10")},
			currency:    "USD",
			price:       "USD 10.00",
			payable:     "Free",
			hasDiscount: false,
		},
		{
			name:        "null price",
			cart:        domain.Cart{Currency: "USD", Payable: amount("10")},
			currency:    "USD",
			price:       "Free",
			payable:     "USD 10.00",
			hasDiscount: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := p.Record(tt.cart)

			assert.Equal(t, tt.currency, r.FinalCurrency())
			assert.Equal(t, tt.price, r.FormattedPrice())
			assert.Equal(t, tt.payable, r.FormattedPayable())

			discount, ok := r.FormattedDiscount()
			assert.Equal(t, tt.hasDiscount, ok)
			assert.Equal(t, tt.discount, discount)

			sum := r.DiscountAmount()
			assert.Equal(t, tt.hasDiscount, sum.Valid)
			if tt.hasDiscount {
				assert.Equal(t, tt.discountSum, sum.Decimal.String())
			}
		})
	}
}

func TestRecord_Links(t *testing.T) {
	checkout := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	cart := domain.Cart{
		ID:         42,
		UserID:     7,
		Username:   "jdoe",
		Email:      "jdoe@example.com",
		FirstName:  "Jane",
		LastName:   "Doe",
		CheckoutAt: &checkout,
	}

	r := newTestPresenter().Record(cart)

	assert.Equal(t, "/enrol/cart/view.php?id=42", r.ViewURL())
	assert.Equal(t, domain.Identity{
		UserID:      7,
		Username:    "jdoe",
		Email:       "jdoe@example.com",
		DisplayName: "Jane Doe",
		ProfileURL:  "/user/profile.php?id=7",
	}, r.Buyer())
	assert.Equal(t, cart, r.Cart())
}

func TestRecord_NoLinkPatterns(t *testing.T) {
	r := NewPresenter(stubFormatter{}, Settings{}).Record(domain.Cart{ID: 1, UserID: 2, Username: "u"})

	assert.Empty(t, r.ViewURL())
	assert.Empty(t, r.Buyer().ProfileURL)
	assert.Equal(t, "u", r.Buyer().DisplayName)
}

func TestRecord_PatternWithoutIDVerb(t *testing.T) {
	r := NewPresenter(stubFormatter{}, Settings{
		CartURL:    "/enrol/cart/index.php",
		ProfileURL: "/user/index.php",
	}).Record(domain.Cart{ID: 1, UserID: 2, Username: "u"})

	assert.Equal(t, "/enrol/cart/index.php", r.ViewURL())
	assert.Equal(t, "/user/index.php", r.Buyer().ProfileURL)
	assert.NotContains(t, r.ViewURL(), "%!")
}
