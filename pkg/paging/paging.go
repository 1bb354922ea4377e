// Package paging parses page/size/sort/search query parameters and renders
// paged list responses with navigation links.
package paging

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/pkg/apperror"
)

// Sortable maps a public sort field to its column on the queried table.
type Sortable map[string]string

// Order is one resolved ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// Request is a parsed list request.
type Request struct {
	Page   int
	Size   int
	Sort   []Order
	Search string
}

// Offset returns the row offset of the requested page.
func (r Request) Offset() int {
	return r.Page * r.Size
}

// Apply adds ordering and limits to q. Columns are qualified with alias.
// Without an explicit sort the rows come back in creation order; key is
// always appended so pages are stable.
func (r Request) Apply(q *bun.SelectQuery, alias, key string) *bun.SelectQuery {
	if len(r.Sort) == 0 {
		q = q.OrderExpr(alias + ".created_at ASC")
	}
	for _, o := range r.Sort {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		q = q.OrderExpr(fmt.Sprintf("%s.%s %s", alias, o.Column, dir))
	}
	return q.OrderExpr(alias + "." + key + " ASC").
		Limit(r.Size).
		Offset(r.Offset())
}

// Like returns an ILIKE pattern matching s anywhere, with wildcards in s escaped.
func Like(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// Parser reads list parameters with configured size limits.
type Parser struct {
	defaultSize int
	maxSize     int
}

// NewParser creates a Parser.
func NewParser(defaultSize, maxSize int) *Parser {
	return &Parser{defaultSize: defaultSize, maxSize: maxSize}
}

// Parse reads page, size, sort and search from the query string.
// sort is "field" or "field,asc|desc" and may repeat.
func (p *Parser) Parse(c echo.Context, sortable Sortable) (Request, error) {
	return p.ParseValues(c.QueryParams(), sortable)
}

// ParseValues is Parse over raw query values.
func (p *Parser) ParseValues(q url.Values, sortable Sortable) (Request, error) {
	req := Request{Size: p.defaultSize, Search: strings.TrimSpace(q.Get("search"))}

	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return req, apperror.NewBadRequest("page must be a non-negative integer")
		}
		req.Page = n
	}

	if s := q.Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return req, apperror.NewBadRequest("size must be a positive integer")
		}
		if n > p.maxSize {
			n = p.maxSize
		}
		req.Size = n
	}

	if req.Page > math.MaxInt32/req.Size {
		return req, apperror.NewBadRequest("page is out of range")
	}

	for _, raw := range q["sort"] {
		if raw == "" {
			continue
		}
		field, dir, _ := strings.Cut(raw, ",")
		col, ok := sortable[strings.TrimSpace(field)]
		if !ok {
			return req, apperror.NewBadRequest(fmt.Sprintf("cannot sort by %q", field))
		}
		o := Order{Column: col}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			o.Desc = true
		default:
			return req, apperror.NewBadRequest(fmt.Sprintf("invalid sort direction %q", dir))
		}
		req.Sort = append(req.Sort, o)
	}

	return req, nil
}
