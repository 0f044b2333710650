package query

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/de-tools/cart-report/pkg/models/domain"
)

var ErrInvalidTablePrefix = errors.New("invalid table prefix")

var tablePrefixPattern = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

const cartColumns = `c.id, c.user_id, c.status, c.currency, c.price, c.payable, ` +
	`c.coupon_id, c.coupon_code, c.coupon_usage_id, c.checkout_at, ` +
	`c.created_at, c.created_by, c.updated_at, c.updated_by, ` +
	`u.username, u.email, u.firstname AS first_name, u.lastname AS last_name`

// Statement is a SQL template with :name placeholders and the values bound to them.
type Statement struct {
	Name   string
	SQL    string
	Params map[string]any
}

// Tables are the physical names of the cart and account tables.
type Tables struct {
	Cart string
	User string
}

// NewTables applies a table prefix. The prefix ends up in SQL text, so it is limited
// to identifier characters.
func NewTables(prefix string) (Tables, error) {
	if !tablePrefixPattern.MatchString(prefix) {
		return Tables{}, fmt.Errorf("%w: %q", ErrInvalidTablePrefix, prefix)
	}
	return Tables{
		Cart: prefix + "enrol_cart",
		User: prefix + "user",
	}, nil
}

// Builder turns search state into the rows, count and payable-totals statements.
type Builder struct {
	tables Tables
	loc    *time.Location
}

// NewBuilder returns a builder whose checkout date bounds are computed in loc.
func NewBuilder(tables Tables, loc *time.Location) *Builder {
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{tables: tables, loc: loc}
}

func (b *Builder) Tables() Tables {
	return b.tables
}

// Location is the zone checkout dates are interpreted in.
func (b *Builder) Location() *time.Location {
	return b.loc
}

// Rows selects one page of carts joined with their buyers.
func (b *Builder) Rows(filter domain.FilterCriteria, sort domain.SortSpec, page domain.PageSpec) Statement {
	where, params := b.where(filter)

	var sb strings.Builder
	sb.WriteString("SELECT " + cartColumns + " " + b.from())
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}
	sb.WriteString(" ORDER BY " + orderBy(sort))
	sb.WriteString(" LIMIT :limit OFFSET :offset")

	params["limit"] = page.Limit()
	params["offset"] = page.Offset()

	return Statement{Name: "rows", SQL: sb.String(), Params: params}
}

// Count counts every cart matching filter, ignoring sort and pagination.
func (b *Builder) Count(filter domain.FilterCriteria) Statement {
	where, params := b.where(filter)

	sql := "SELECT COUNT(c.id) " + b.from()
	if where != "" {
		sql += " WHERE " + where
	}

	return Statement{Name: "count", SQL: sql, Params: params}
}

// PayableTotals sums the payable column per stored currency.
func (b *Builder) PayableTotals(filter domain.FilterCriteria) Statement {
	where, params := b.where(filter)

	sql := "SELECT c.currency AS currency, SUM(c.payable) AS payable " + b.from()
	if where != "" {
		sql += " WHERE " + where
	}
	sql += " GROUP BY c.currency"

	return Statement{Name: "totals", SQL: sql, Params: params}
}

// User selects a single account by id.
func (b *Builder) User(userID int64) Statement {
	return Statement{
		Name: "user",
		SQL: "SELECT u.id, u.username, u.email, u.firstname AS first_name, u.lastname AS last_name " +
			"FROM " + b.tables.User + " u WHERE u.id = :id",
		Params: map[string]any{"id": userID},
	}
}

func (b *Builder) from() string {
	return fmt.Sprintf("FROM %s c INNER JOIN %s u ON c.user_id = u.id", b.tables.Cart, b.tables.User)
}

func (b *Builder) where(filter domain.FilterCriteria) (string, map[string]any) {
	p := newPredicates()

	if filter.ID != nil {
		p.add("c.id = :id", "id", *filter.ID)
	}
	if filter.UserID != nil {
		p.add("c.user_id = :user", "user", *filter.UserID)
	}
	if filter.Status != nil {
		p.add("c.status = :status", "status", int(*filter.Status))
	}
	if filter.CouponCode != nil && *filter.CouponCode != "" {
		p.add("c.coupon_code = :coupon_code", "coupon_code", *filter.CouponCode)
	}

	// A checkout range only makes sense for delivered carts. This is added on top of
	// any explicit status filter.
	if filter.HasCheckoutRange() {
		p.add("c.status = :status_delivered", "status_delivered", int(domain.CartStatusDelivered))
	}
	if filter.From != nil {
		p.add("c.checkout_at >= :checkout_time_from", "checkout_time_from", b.startOfDay(*filter.From))
	}
	if filter.To != nil {
		p.add("c.checkout_at <= :checkout_time_to", "checkout_time_to", b.endOfDay(*filter.To))
	}

	return p.sql(), p.params
}

func (b *Builder) startOfDay(t time.Time) int64 {
	y, m, d := t.In(b.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, b.loc).Unix()
}

func (b *Builder) endOfDay(t time.Time) int64 {
	y, m, d := t.In(b.loc).Date()
	return time.Date(y, m, d, 23, 59, 59, 0, b.loc).Unix()
}

func orderBy(sort domain.SortSpec) string {
	if !sort.Field.Valid() {
		sort = domain.DefaultSort()
	}
	dir := "DESC"
	if sort.Direction == domain.SortAsc {
		dir = "ASC"
	}
	return "c." + string(sort.Field) + " " + dir
}

type predicates struct {
	clauses []string
	params  map[string]any
}

func newPredicates() *predicates {
	return &predicates{params: map[string]any{}}
}

func (p *predicates) add(clause, name string, value any) {
	p.clauses = append(p.clauses, clause)
	p.params[name] = value
}

func (p *predicates) sql() string {
	return strings.Join(p.clauses, " AND ")
}
