package catalog

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Scope narrows a list query.
type Scope func(q *bun.SelectQuery) *bun.SelectQuery

// Search matches req.Search case-insensitively against any of cols.
func Search(alias, search string, cols ...string) Scope {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if search == "" || len(cols) == 0 {
			return q
		}
		pattern := paging.Like(search)
		return q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			for _, col := range cols {
				q = q.WhereOr("?.? ILIKE ?", bun.Ident(alias), bun.Ident(col), pattern)
			}
			return q
		})
	}
}

// Rights limits a query over the right-hand entity of l to rows linked to leftID.
func (l LinkTable) Rights(alias, key, leftID string) Scope {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return l.RightsOf(q, alias, key, leftID)
	}
}

// Lefts limits a query over the left-hand entity of l to rows linked to rightID.
func (l LinkTable) Lefts(alias, key, rightID string) Scope {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return l.LeftsOf(q, alias, key, rightID)
	}
}

// List selects a page of T. alias and key are the model's table alias and key
// column, used for ordering.
func List[T any](ctx context.Context, db bun.IDB, req paging.Request, alias, key string, scopes ...Scope) (paging.Page[T], error) {
	var items []T
	q := db.NewSelect().Model(&items)
	for _, scope := range scopes {
		q = scope(q)
	}
	total, err := req.Apply(q, alias, key).ScanAndCount(ctx)
	if err != nil {
		return paging.Page[T]{}, apperror.ErrDatabase.WithInternal(err)
	}
	return paging.New(items, total, req), nil
}
