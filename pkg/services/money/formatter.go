package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Formatter interface {
	FormatMoney(amount decimal.Decimal, currencyCode string) string
}

type formatter struct {
	printer *message.Printer
}

// NewFormatter formats amounts with the currency symbol and digit conventions of tag.
func NewFormatter(tag language.Tag) Formatter {
	return &formatter{printer: message.NewPrinter(tag)}
}

func (f *formatter) FormatMoney(amount decimal.Decimal, currencyCode string) string {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))

	unit, err := currency.ParseISO(code)
	if err != nil {
		// Non ISO units such as IRT (toman) are printed as a plain number and code.
		return f.printer.Sprint(number.Decimal(amount.InexactFloat64(), number.MaxFractionDigits(2))) + " " + code
	}

	scale, _ := currency.Standard.Rounding(unit)
	value := amount.Round(int32(scale)).InexactFloat64()
	return f.printer.Sprint(currency.Symbol(unit.Amount(value)))
}
