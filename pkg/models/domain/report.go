package domain

import "github.com/shopspring/decimal"

// AggregateTotal is the payable sum of one currency bucket.
type AggregateTotal struct {
	Currency   string
	PayableSum decimal.Decimal
	Formatted  string
}

// PageInfo describes the slice of the result set shown on a page.
type PageInfo struct {
	Page  int
	Pages int
	Size  int
	Begin int64 // 1-based, 0 when empty
	End   int64
	Total int64
}

// SortLink is the state needed to render a sortable column head.
type SortLink struct {
	Field     SortField
	Params    map[string]string
	Active    bool
	Direction SortDirection // current direction when Active
}

// Identity is the display form of a buyer account.
type Identity struct {
	UserID      int64
	Username    string
	Email       string
	DisplayName string
	ProfileURL  string
}
