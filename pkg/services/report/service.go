package report

import (
	"context"

	"github.com/de-tools/cart-report/pkg/models/domain"
	"github.com/de-tools/cart-report/pkg/services/money"
	"github.com/de-tools/cart-report/pkg/store/query"
)

// Result is one rendered report page.
type Result struct {
	Records  []Record
	Total    int64
	PageInfo domain.PageInfo
	Params   map[string]string
	Columns  []domain.SortLink
}

func (r Result) Empty() bool {
	return r.Total == 0
}

// Service runs report requests given as flat key/value input.
type Service interface {
	Search(ctx context.Context, values map[string]string) (Result, error)
	Totals(ctx context.Context, values map[string]string) ([]domain.AggregateTotal, error)
}

type service struct {
	store     Store
	builder   *query.Builder
	formatter money.Formatter
	settings  Settings
}

func NewService(store Store, builder *query.Builder, formatter money.Formatter, settings Settings) Service {
	return &service{
		store:     store,
		builder:   builder,
		formatter: formatter,
		settings:  settings,
	}
}

func (s *service) newSearch(values map[string]string) *Search {
	return NewSearch(s.store, s.builder, s.formatter, s.settings).LoadRequest(values)
}

func (s *service) Search(ctx context.Context, values map[string]string) (Result, error) {
	search := s.newSearch(values)

	records, total, err := search.FetchPage(ctx)
	if err != nil {
		return Result{}, err
	}

	columns := make([]domain.SortLink, 0, len(domain.SortFields()))
	for _, field := range domain.SortFields() {
		columns = append(columns, search.ColumnHead(field))
	}

	return Result{
		Records:  records,
		Total:    total,
		PageInfo: search.Pagination(total),
		Params:   search.URLParams(),
		Columns:  columns,
	}, nil
}

func (s *service) Totals(ctx context.Context, values map[string]string) ([]domain.AggregateTotal, error) {
	return s.newSearch(values).FetchTotals(ctx)
}
