package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/cart-report/pkg/models/api"
	"github.com/de-tools/cart-report/pkg/models/domain"
	"github.com/de-tools/cart-report/pkg/services/i18n"
	"github.com/de-tools/cart-report/pkg/services/identity"
	"github.com/de-tools/cart-report/pkg/services/report"
)

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) Search(ctx context.Context, values map[string]string) (report.Result, error) {
	args := m.Called(ctx, values)
	return args.Get(0).(report.Result), args.Error(1)
}

func (m *mockReportService) Totals(ctx context.Context, values map[string]string) ([]domain.AggregateTotal, error) {
	args := m.Called(ctx, values)
	return args.Get(0).([]domain.AggregateTotal), args.Error(1)
}

type mockLookup struct {
	mock.Mock
}

func (m *mockLookup) Resolve(ctx context.Context, userID int64) (domain.Identity, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Identity), args.Error(1)
}

type plainFormatter struct{}

func (plainFormatter) FormatMoney(amount decimal.Decimal, currencyCode string) string {
	return fmt.Sprintf("%s %s", amount.StringFixed(2), currencyCode)
}

func newTestRouter(svc report.Service, lookup identity.Lookup) http.Handler {
	h := NewHandler(svc, lookup, i18n.NewTranslator("en"))

	r := chi.NewRouter()
	r.Get("/carts", h.SearchCarts)
	r.Get("/carts/totals", h.GetTotals)
	r.Get("/users/{id}", h.GetUser)
	return r
}

func doGet(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandler_SearchCarts(t *testing.T) {
	checkout := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	presenter := report.NewPresenter(plainFormatter{}, report.Settings{
		DefaultCurrency: "USD",
		CartURL:         "/enrol/cart/view.php?id=%d",
		FreeLabel:       "Free",
	})
	record := presenter.Record(domain.Cart{
		ID:         42,
		UserID:     7,
		Status:     domain.CartStatusDelivered,
		Price:      decimal.NewNullDecimal(decimal.NewFromInt(100)),
		Payable:    decimal.NewNullDecimal(decimal.Zero),
		CouponCode: "FREE100",
		CheckoutAt: &checkout,
		Username:   "jdoe",
		FirstName:  "Jane",
		LastName:   "Doe",
	})

	svc := new(mockReportService)
	svc.On("Search", mock.Anything, map[string]string{"user": "7", "sort": "payable"}).
		Return(report.Result{
			Records:  []report.Record{record},
			Total:    31,
			PageInfo: domain.PageInfo{Page: 1, Pages: 2, Size: 30, Begin: 31, End: 31, Total: 31},
			Params:   map[string]string{"user": "7", "sort": "payable", "dir": "desc", "page": "1"},
			Columns: []domain.SortLink{{
				Field:     domain.SortByPayable,
				Active:    true,
				Direction: domain.SortDesc,
				Params:    map[string]string{"sort": "payable", "dir": "asc"},
			}},
		}, nil)

	rec := doGet(t, newTestRouter(svc, new(mockLookup)), "/carts?user=7&sort=payable&sort=id")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode[api.CartSearchResponse](t, rec)
	assert.False(t, resp.Empty)
	assert.Empty(t, resp.Message)
	assert.Equal(t, "Showing 31 to 31 of 31 entries", resp.Pagination.Info)
	assert.Equal(t, "1", resp.Params["page"])
	require.Len(t, resp.Columns, 1)
	assert.Equal(t, api.SortLink{
		Field:     "payable",
		Active:    true,
		Direction: "desc",
		Params:    map[string]string{"sort": "payable", "dir": "asc"},
	}, resp.Columns[0])

	require.Len(t, resp.Carts, 1)
	cart := resp.Carts[0]
	assert.Equal(t, int64(42), cart.ID)
	assert.Equal(t, "delivered", cart.Status)
	assert.Equal(t, 90, cart.StatusCode)
	assert.Equal(t, "USD", cart.Currency)
	assert.Equal(t, "100.00 USD", cart.FormattedPrice)
	assert.Equal(t, "Free", cart.FormattedPayable)
	require.NotNil(t, cart.FormattedDiscount)
	assert.Equal(t, "100.00 USD", *cart.FormattedDiscount)
	assert.Equal(t, "100", cart.Discount.Decimal.String())
	assert.Equal(t, "/enrol/cart/view.php?id=42", cart.ViewURL)
	assert.Equal(t, "Jane Doe", cart.Buyer.DisplayName)
	require.NotNil(t, cart.CheckoutAt)
	assert.True(t, checkout.Equal(*cart.CheckoutAt))

	svc.AssertExpectations(t)
}

func TestHandler_SearchCarts_Empty(t *testing.T) {
	svc := new(mockReportService)
	svc.On("Search", mock.Anything, map[string]string{}).
		Return(report.Result{Records: []report.Record{}, PageInfo: domain.PageInfo{Size: 30}}, nil)

	rec := doGet(t, newTestRouter(svc, new(mockLookup)), "/carts")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[api.CartSearchResponse](t, rec)
	assert.True(t, resp.Empty)
	assert.Equal(t, "No results found.", resp.Message)
	assert.Empty(t, resp.Carts)
	assert.Empty(t, resp.Pagination.Info)
}

func TestHandler_SearchCarts_Error(t *testing.T) {
	svc := new(mockReportService)
	svc.On("Search", mock.Anything, mock.Anything).Return(report.Result{}, assert.AnError)

	rec := doGet(t, newTestRouter(svc, new(mockLookup)), "/carts")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, api.ErrorResponse{Error: "failed to search carts"}, decode[api.ErrorResponse](t, rec))
}

func TestHandler_GetTotals(t *testing.T) {
	svc := new(mockReportService)
	svc.On("Totals", mock.Anything, map[string]string{"status": "delivered"}).
		Return([]domain.AggregateTotal{
			{Currency: "EUR", PayableSum: decimal.NewFromInt(7), Formatted: "7.00 EUR"},
			{Currency: "USD", PayableSum: decimal.NewFromInt(15), Formatted: "15.00 USD"},
		}, nil)
	svc.On("Totals", mock.Anything, map[string]string{"status": "canceled"}).
		Return([]domain.AggregateTotal{}, nil)
	svc.On("Totals", mock.Anything, map[string]string{"status": "pending"}).
		Return([]domain.AggregateTotal(nil), assert.AnError)

	router := newTestRouter(svc, new(mockLookup))

	t.Run("grouped", func(t *testing.T) {
		rec := doGet(t, router, "/carts/totals?status=delivered")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[api.TotalsResponse](t, rec)
		assert.Equal(t, "Total payable", resp.Label)
		require.Len(t, resp.Totals, 2)
		assert.Equal(t, "EUR", resp.Totals[0].Currency)
		assert.Equal(t, "15.00 USD", resp.Totals[1].Formatted)
		assert.True(t, decimal.NewFromInt(15).Equal(resp.Totals[1].Payable))
	})

	t.Run("empty", func(t *testing.T) {
		rec := doGet(t, router, "/carts/totals?status=canceled")
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decode[api.TotalsResponse](t, rec)
		assert.True(t, resp.Empty)
		assert.Equal(t, "No results found.", resp.Message)
	})

	t.Run("error", func(t *testing.T) {
		rec := doGet(t, router, "/carts/totals?status=pending")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandler_GetUser(t *testing.T) {
	lookup := new(mockLookup)
	lookup.On("Resolve", mock.Anything, int64(7)).Return(domain.Identity{
		UserID:      7,
		Username:    "jdoe",
		Email:       "jdoe@example.com",
		DisplayName: "Jane Doe",
		ProfileURL:  "/user/profile.php?id=7",
	}, nil)
	lookup.On("Resolve", mock.Anything, int64(8)).
		Return(domain.Identity{}, fmt.Errorf("%w: 8", identity.ErrUserNotFound))
	lookup.On("Resolve", mock.Anything, int64(9)).Return(domain.Identity{}, assert.AnError)

	router := newTestRouter(new(mockReportService), lookup)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"found", "/users/7", http.StatusOK},
		{"not found", "/users/8", http.StatusNotFound},
		{"lookup failure", "/users/9", http.StatusInternalServerError},
		{"not a number", "/users/abc", http.StatusBadRequest},
		{"zero", "/users/0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doGet(t, router, tt.path)
			assert.Equal(t, tt.status, rec.Code)
		})
	}

	rec := doGet(t, router, "/users/7")
	assert.Equal(t, api.User{
		ID:          7,
		Username:    "jdoe",
		Email:       "jdoe@example.com",
		DisplayName: "Jane Doe",
		ProfileURL:  "/user/profile.php?id=7",
	}, decode[api.User](t, rec))
}
