package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// PageSize is the fixed number of carts per report page.
	PageSize = 30
	// MaxPage is the highest page whose offset still fits in an int.
	MaxPage = math.MaxInt / PageSize

	dateLayout = "2006-01-02"
)

// FilterCriteria holds the optional search filters. A nil field adds no predicate.
type FilterCriteria struct {
	ID         *int64
	UserID     *int64
	CouponCode *string
	Status     *CartStatus
	From       *time.Time
	To         *time.Time
}

// HasCheckoutRange reports whether a checkout date bound is set.
func (f FilterCriteria) HasCheckoutRange() bool {
	return f.From != nil || f.To != nil
}

type SortField string

const (
	SortByID         SortField = "id"
	SortByCouponCode SortField = "coupon_code"
	SortByPayable    SortField = "payable"
	SortByStatus     SortField = "status"
	SortByCheckoutAt SortField = "checkout_at"
)

// SortFields lists the sortable columns.
func SortFields() []SortField {
	return []SortField{SortByID, SortByCouponCode, SortByPayable, SortByStatus, SortByCheckoutAt}
}

func (f SortField) Valid() bool {
	for _, field := range SortFields() {
		if field == f {
			return true
		}
	}
	return false
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

type SortSpec struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort is the most-recent-checkout-first view.
func DefaultSort() SortSpec {
	return SortSpec{Field: SortByCheckoutAt, Direction: SortDesc}
}

// NewSortSpec normalizes raw sort tokens. An unknown field yields DefaultSort and any
// direction other than "asc" is descending.
func NewSortSpec(field, dir string) SortSpec {
	f := SortField(strings.TrimSpace(field))
	if !f.Valid() {
		return DefaultSort()
	}
	d := SortDesc
	if strings.EqualFold(strings.TrimSpace(dir), string(SortAsc)) {
		d = SortAsc
	}
	return SortSpec{Field: f, Direction: d}
}

type PageSpec struct {
	Page int
	Size int
}

// NewPageSpec clamps negative pages to the first page.
func NewPageSpec(page int) PageSpec {
	page = max(0, min(page, MaxPage))
	return PageSpec{Page: page, Size: PageSize}
}

func (p PageSpec) Limit() int {
	if p.Size <= 0 {
		return PageSize
	}
	return p.Size
}

// Offset never overflows: pages past the last representable one are clamped.
func (p PageSpec) Offset() int {
	limit := p.Limit()
	page := max(0, min(p.Page, math.MaxInt/limit))
	return limit * page
}

// Request parameter keys shared by ParseRequest and the link builders.
const (
	ParamID         = "id"
	ParamUser       = "user"
	ParamCouponCode = "couponcode"
	ParamStatus     = "status"
	ParamFrom       = "from"
	ParamTo         = "to"
	ParamSort       = "sort"
	ParamDir        = "dir"
	ParamPage       = "page"
)

// ParseRequest maps a flat key/value input onto typed search state. Malformed values
// are dropped rather than reported. Dates accept YYYY-MM-DD or unix seconds and are
// interpreted in loc.
func ParseRequest(values map[string]string, loc *time.Location) (FilterCriteria, SortSpec, PageSpec) {
	if loc == nil {
		loc = time.UTC
	}
	get := func(key string) string {
		return strings.TrimSpace(values[key])
	}

	var filter FilterCriteria
	if id, ok := parseDigits(get(ParamID)); ok {
		filter.ID = &id
	}
	if user, ok := parseDigits(get(ParamUser)); ok {
		filter.UserID = &user
	}
	if code := get(ParamCouponCode); code != "" {
		filter.CouponCode = &code
	} else if code := get("coupon_code"); code != "" {
		filter.CouponCode = &code
	}
	if status, ok := ParseCartStatus(get(ParamStatus)); ok {
		filter.Status = &status
	}
	if from, ok := parseDate(get(ParamFrom), loc); ok {
		filter.From = &from
	}
	if to, ok := parseDate(get(ParamTo), loc); ok {
		filter.To = &to
	}

	sort := NewSortSpec(get(ParamSort), get(ParamDir))

	page, err := strconv.Atoi(get(ParamPage))
	if err != nil {
		page = 0
	}

	return filter, sort, NewPageSpec(page)
}

// FormatDate renders a filter date the way ParseRequest reads it back.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func parseDigits(v string) (int64, bool) {
	if v == "" {
		return 0, false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseDate(v string, loc *time.Location) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(dateLayout, v, loc); err == nil {
		return t, true
	}
	if secs, ok := parseDigits(v); ok && secs > 0 {
		y, m, d := time.Unix(secs, 0).In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}
