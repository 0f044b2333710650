package report

import (
	"github.com/de-tools/cart-report/pkg/models/api"
	"github.com/de-tools/cart-report/pkg/models/domain"
	"github.com/de-tools/cart-report/pkg/services/i18n"
	"github.com/de-tools/cart-report/pkg/services/report"
)

func mapSearchResult(result report.Result, tr *i18n.Translator) api.CartSearchResponse {
	carts := make([]api.Cart, 0, len(result.Records))
	for _, record := range result.Records {
		carts = append(carts, mapRecord(record))
	}

	columns := make([]api.SortLink, 0, len(result.Columns))
	for _, column := range result.Columns {
		columns = append(columns, api.SortLink{
			Field:     string(column.Field),
			Active:    column.Active,
			Direction: string(column.Direction),
			Params:    column.Params,
		})
	}

	info := result.PageInfo
	response := api.CartSearchResponse{
		Carts: carts,
		Pagination: api.Pagination{
			Page:  info.Page,
			Pages: info.Pages,
			Size:  info.Size,
			Begin: info.Begin,
			End:   info.End,
			Total: info.Total,
		},
		Columns: columns,
		Params:  result.Params,
		Empty:   result.Empty(),
	}

	if response.Empty {
		response.Message = tr.T(i18n.NoResultsFound)
	} else if info.Begin > 0 {
		response.Pagination.Info = tr.T(i18n.PaginationInfo, info.Begin, info.End, info.Total)
	}
	return response
}

func mapRecord(record report.Record) api.Cart {
	cart := record.Cart()

	out := api.Cart{
		ID:               cart.ID,
		UserID:           cart.UserID,
		Status:           cart.Status.String(),
		StatusCode:       int(cart.Status),
		Currency:         record.FinalCurrency(),
		Price:            cart.Price,
		Payable:          cart.Payable,
		Discount:         record.DiscountAmount(),
		FormattedPrice:   record.FormattedPrice(),
		FormattedPayable: record.FormattedPayable(),
		CouponCode:       cart.CouponCode,
		CheckoutAt:       cart.CheckoutAt,
		CreatedAt:        cart.CreatedAt,
		ViewURL:          record.ViewURL(),
		Buyer:            mapIdentity(record.Buyer()),
	}
	if discount, ok := record.FormattedDiscount(); ok {
		out.FormattedDiscount = &discount
	}
	return out
}

func mapIdentity(identity domain.Identity) api.User {
	return api.User{
		ID:          identity.UserID,
		Username:    identity.Username,
		Email:       identity.Email,
		DisplayName: identity.DisplayName,
		ProfileURL:  identity.ProfileURL,
	}
}

func mapTotals(totals []domain.AggregateTotal, tr *i18n.Translator) api.TotalsResponse {
	response := api.TotalsResponse{
		Label:  tr.T(i18n.TotalPayable),
		Totals: make([]api.PayableTotal, 0, len(totals)),
		Empty:  len(totals) == 0,
	}
	for _, total := range totals {
		response.Totals = append(response.Totals, api.PayableTotal{
			Currency:  total.Currency,
			Payable:   total.PayableSum,
			Formatted: total.Formatted,
		})
	}
	if response.Empty {
		response.Message = tr.T(i18n.NoResultsFound)
	}
	return response
}
