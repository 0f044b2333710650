package report

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/de-tools/cart-report/pkg/adapters"
	"github.com/de-tools/cart-report/pkg/models/domain"
	"github.com/de-tools/cart-report/pkg/models/store"
	"github.com/de-tools/cart-report/pkg/services/money"
	"github.com/de-tools/cart-report/pkg/store/query"
)

// Store runs the statements produced by the query builder.
type Store interface {
	Select(ctx context.Context, dest any, stmt query.Statement) error
	Count(ctx context.Context, stmt query.Statement) (int64, error)
}

type Settings struct {
	DefaultCurrency string
	CartURL         string
	ProfileURL      string
	FreeLabel       string
}

// Search holds the state of one report request. Build a new one per request.
type Search struct {
	store     Store
	builder   *query.Builder
	formatter money.Formatter
	presenter Presenter
	loc       *time.Location

	filter domain.FilterCriteria
	sort   domain.SortSpec
	page   domain.PageSpec
}

// NewSearch reads and echoes dates in the builder's location.
func NewSearch(store Store, builder *query.Builder, formatter money.Formatter, settings Settings) *Search {
	return &Search{
		store:     store,
		builder:   builder,
		formatter: formatter,
		presenter: NewPresenter(formatter, settings),
		loc:       builder.Location(),
		sort:      domain.DefaultSort(),
		page:      domain.NewPageSpec(0),
	}
}

// Load fixes the filter, sort and page for the following fetches.
func (s *Search) Load(filter domain.FilterCriteria, order domain.SortSpec, page domain.PageSpec) *Search {
	if !order.Field.Valid() {
		order = domain.DefaultSort()
	}
	if order.Direction != domain.SortAsc {
		order.Direction = domain.SortDesc
	}
	s.filter = filter
	s.sort = order
	s.page = domain.NewPageSpec(page.Page)
	return s
}

// LoadRequest parses flat request values and loads them.
func (s *Search) LoadRequest(values map[string]string) *Search {
	return s.Load(domain.ParseRequest(values, s.loc))
}

func (s *Search) Filter() domain.FilterCriteria {
	return s.filter
}

func (s *Search) Sort() domain.SortSpec {
	return s.sort
}

func (s *Search) Page() domain.PageSpec {
	return s.page
}

// FetchPage counts every match and then loads the current page of rows.
func (s *Search) FetchPage(ctx context.Context) ([]Record, int64, error) {
	logger := zerolog.Ctx(ctx)

	total, err := s.store.Count(ctx, s.builder.Count(s.filter))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count carts: %w", err)
	}
	if total == 0 {
		return []Record{}, 0, nil
	}
	if int64(s.page.Offset()) >= total {
		return []Record{}, total, nil
	}

	var rows []store.CartRow
	if err := s.store.Select(ctx, &rows, s.builder.Rows(s.filter, s.sort, s.page)); err != nil {
		return nil, 0, fmt.Errorf("failed to load carts: %w", err)
	}

	logger.Debug().
		Int64("total", total).
		Int("rows", len(rows)).
		Int("page", s.page.Page).
		Msg("cart page loaded")

	return s.presenter.Records(adapters.MapStoreCartRowsToDomain(rows)), total, nil
}

// FetchTotals sums payable per currency. Carts without a currency are counted in the
// default currency.
func (s *Search) FetchTotals(ctx context.Context) ([]domain.AggregateTotal, error) {
	var rows []store.PayableTotalRow
	if err := s.store.Select(ctx, &rows, s.builder.PayableTotals(s.filter)); err != nil {
		return nil, fmt.Errorf("failed to sum payable amounts: %w", err)
	}

	sums := make(map[string]decimal.Decimal)
	for _, row := range rows {
		code := s.presenter.currency(row.Currency.String)
		sum := sums[code]
		if row.Payable.Valid {
			sum = sum.Add(row.Payable.Decimal)
		}
		sums[code] = sum
	}

	totals := make([]domain.AggregateTotal, 0, len(sums))
	for code, sum := range sums {
		totals = append(totals, domain.AggregateTotal{
			Currency:   code,
			PayableSum: sum,
			Formatted:  s.formatter.FormatMoney(sum, code),
		})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Currency < totals[j].Currency
	})

	return totals, nil
}

// URLParams echoes the loaded state. Unset filters are present with empty values, and
// ParseRequest reads the result back into the same state.
func (s *Search) URLParams() map[string]string {
	params := s.filterParams()
	params[domain.ParamSort] = string(s.sort.Field)
	params[domain.ParamDir] = string(s.sort.Direction)
	params[domain.ParamPage] = strconv.Itoa(s.page.Page)
	return params
}

// ColumnHead describes the link for a sortable column. Following the link sorts by
// field, flipping the direction when field is already the active sort, and returns to
// the first page.
func (s *Search) ColumnHead(field domain.SortField) domain.SortLink {
	active := s.sort.Field == field

	dir := domain.SortAsc
	if active {
		dir = s.sort.Direction.Toggle()
	}

	params := s.filterParams()
	params[domain.ParamSort] = string(field)
	params[domain.ParamDir] = string(dir)
	params[domain.ParamPage] = "0"

	link := domain.SortLink{
		Field:  field,
		Params: params,
		Active: active,
	}
	if active {
		link.Direction = s.sort.Direction
	}
	return link
}

// Pagination describes which slice of total the current page shows.
func (s *Search) Pagination(total int64) domain.PageInfo {
	size := s.page.Limit()
	info := domain.PageInfo{
		Page:  s.page.Page,
		Size:  size,
		Total: total,
	}
	if total <= 0 {
		return info
	}

	info.Pages = int((total + int64(size) - 1) / int64(size))

	begin := int64(s.page.Offset()) + 1
	if begin > total {
		return info
	}
	info.Begin = begin
	info.End = min(begin+int64(size)-1, total)
	return info
}

func (s *Search) filterParams() map[string]string {
	params := map[string]string{
		domain.ParamID:         "",
		domain.ParamUser:       "",
		domain.ParamCouponCode: "",
		domain.ParamStatus:     "",
		domain.ParamFrom:       "",
		domain.ParamTo:         "",
	}
	if s.filter.ID != nil {
		params[domain.ParamID] = strconv.FormatInt(*s.filter.ID, 10)
	}
	if s.filter.UserID != nil {
		params[domain.ParamUser] = strconv.FormatInt(*s.filter.UserID, 10)
	}
	if s.filter.CouponCode != nil {
		params[domain.ParamCouponCode] = strings.TrimSpace(*s.filter.CouponCode)
	}
	if s.filter.Status != nil {
		params[domain.ParamStatus] = s.filter.Status.String()
	}
	if s.filter.From != nil {
		params[domain.ParamFrom] = domain.FormatDate(s.filter.From.In(s.loc))
	}
	if s.filter.To != nil {
		params[domain.ParamTo] = domain.FormatDate(s.filter.To.In(s.loc))
	}
	return params
}
