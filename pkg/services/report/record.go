package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/de-tools/cart-report/pkg/models/domain"
	"github.com/de-tools/cart-report/pkg/services/identity"
	"github.com/de-tools/cart-report/pkg/services/money"
)

// Presenter carries what a Record needs to derive its display values.
type Presenter struct {
	formatter       money.Formatter
	freeLabel       string
	defaultCurrency string
	cartURL         string
	profileURL      string
}

func NewPresenter(formatter money.Formatter, settings Settings) Presenter {
	return Presenter{
		formatter:       formatter,
		freeLabel:       settings.FreeLabel,
		defaultCurrency: strings.ToUpper(strings.TrimSpace(settings.DefaultCurrency)),
		cartURL:         settings.CartURL,
		profileURL:      settings.ProfileURL,
	}
}

func (p Presenter) Record(cart domain.Cart) Record {
	return Record{cart: cart, presenter: p}
}

func (p Presenter) Records(carts []domain.Cart) []Record {
	records := make([]Record, 0, len(carts))
	for _, cart := range carts {
		records = append(records, p.Record(cart))
	}
	return records
}

func (p Presenter) currency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return p.defaultCurrency
	}
	return code
}

func (p Presenter) formatAmount(amount decimal.NullDecimal, currency string) string {
	if !amount.Valid || !amount.Decimal.IsPositive() {
		return p.freeLabel
	}
	return p.formatter.FormatMoney(amount.Decimal, currency)
}

// Record is one report row with its derived money values. It has no setters.
type Record struct {
	cart      domain.Cart
	presenter Presenter
}

func (r Record) Cart() domain.Cart {
	return r.cart
}

// FinalCurrency is the stored currency, or the configured default when unset.
func (r Record) FinalCurrency() string {
	return r.presenter.currency(r.cart.Currency)
}

// DiscountAmount is price minus payable. It is null when either side is null.
func (r Record) DiscountAmount() decimal.NullDecimal {
	if !r.cart.Price.Valid || !r.cart.Payable.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(r.cart.Price.Decimal.Sub(r.cart.Payable.Decimal))
}

func (r Record) FormattedPrice() string {
	return r.presenter.formatAmount(r.cart.Price, r.FinalCurrency())
}

func (r Record) FormattedPayable() string {
	return r.presenter.formatAmount(r.cart.Payable, r.FinalCurrency())
}

// FormattedDiscount reports false when there is no discount to show.
func (r Record) FormattedDiscount() (string, bool) {
	discount := r.DiscountAmount()
	if !discount.Valid {
		return "", false
	}
	return r.presenter.formatAmount(discount, r.FinalCurrency()), true
}

func (r Record) ViewURL() string {
	return domain.ExpandLink(r.presenter.cartURL, r.cart.ID)
}

func (r Record) Buyer() domain.Identity {
	return identity.FromCart(r.cart, r.presenter.profileURL)
}
