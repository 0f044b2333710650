package export

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/de-tools/cart-report/pkg/models/domain"
	"github.com/de-tools/cart-report/pkg/services/i18n"
	"github.com/de-tools/cart-report/pkg/services/report"
)

type TableConfig struct {
	IDWidth       int
	BuyerWidth    int
	StatusWidth   int
	CouponWidth   int
	MoneyWidth    int
	CheckoutWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		IDWidth:       8,
		BuyerWidth:    28,
		StatusWidth:   10,
		CouponWidth:   16,
		MoneyWidth:    16,
		CheckoutWidth: 16,
	}
}

func (c TableConfig) widths() []int {
	return []int{
		c.IDWidth,
		c.BuyerWidth,
		c.StatusWidth,
		c.CouponWidth,
		c.MoneyWidth,
		c.MoneyWidth,
		c.MoneyWidth,
		c.CheckoutWidth,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

type searchView struct {
	Empty   bool
	Message string
	Info    string
	Rows    [][]string
}

type totalsView struct {
	Empty   bool
	Message string
	Label   string
	Totals  []domain.AggregateTotal
}

const searchTemplate = `{{if .Empty}}{{.Message}}
{{else}}{{separator}}
{{formatRow "ID" "Buyer" "Status" "Coupon" "Price" "Discount" "Payable" "Checkout"}}
{{separator}}
{{range .Rows}}{{formatRow .}}
{{end}}{{separator}}
{{.Info}}
{{end}}`

const totalsTemplate = `{{if .Empty}}{{.Message}}
{{else}}{{.Label}}:
{{range .Totals}}  {{printf "%-4s" .Currency}} {{.Formatted}}
{{end}}{{end}}`

// HandleSearch prints one report page as a table.
func (c *Reporter) HandleSearch(result report.Result, tr *i18n.Translator) error {
	view := searchView{Empty: result.Empty()}
	if view.Empty {
		view.Message = tr.T(i18n.NoResultsFound)
	} else if info := result.PageInfo; info.Begin > 0 {
		view.Info = tr.T(i18n.PaginationInfo, info.Begin, info.End, info.Total)
	}

	for _, record := range result.Records {
		view.Rows = append(view.Rows, recordRow(record))
	}

	return c.execute("search", searchTemplate, view)
}

// HandleTotals prints the payable sum of each currency.
func (c *Reporter) HandleTotals(totals []domain.AggregateTotal, tr *i18n.Translator) error {
	view := totalsView{
		Empty:  len(totals) == 0,
		Label:  tr.T(i18n.TotalPayable),
		Totals: totals,
	}
	if view.Empty {
		view.Message = tr.T(i18n.NoResultsFound)
	}
	return c.execute("totals", totalsTemplate, view)
}

func (c *Reporter) execute(name, text string, data any) error {
	widths := c.config.widths()
	funcMap := template.FuncMap{
		"formatRow": func(cols ...any) string {
			if len(cols) == 1 {
				if row, ok := cols[0].([]string); ok {
					cols = make([]any, len(row))
					for i, v := range row {
						cols[i] = v
					}
				}
			}
			var sb strings.Builder
			sb.WriteString("|")
			for i, w := range widths {
				var v string
				if i < len(cols) {
					v = fmt.Sprint(cols[i])
				}
				sb.WriteString(fmt.Sprintf(" %-*s |", w, truncate(v, w)))
			}
			return sb.String()
		},
		"separator": func() string {
			var sb strings.Builder
			sb.WriteString("+")
			for _, w := range widths {
				sb.WriteString(strings.Repeat("-", w+2))
				sb.WriteString("+")
			}
			return sb.String()
		},
	}

	t, err := template.New(name).Funcs(funcMap).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, data)
}

func recordRow(record report.Record) []string {
	cart := record.Cart()
	buyer := record.Buyer()

	discount, ok := record.FormattedDiscount()
	if !ok {
		discount = "-"
	}

	checkout := "-"
	if cart.CheckoutAt != nil {
		checkout = cart.CheckoutAt.Format("2006-01-02 15:04")
	}

	coupon := cart.CouponCode
	if coupon == "" {
		coupon = "-"
	}

	return []string{
		strconv.FormatInt(cart.ID, 10),
		buyer.DisplayName,
		cart.Status.String(),
		coupon,
		record.FormattedPrice(),
		discount,
		record.FormattedPayable(),
		checkout,
	}
}

func truncate(v string, width int) string {
	if utf8.RuneCountInString(v) <= width {
		return v
	}
	runes := []rune(v)
	return string(runes[:width-1]) + "…"
}
