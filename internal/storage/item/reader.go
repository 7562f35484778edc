package item

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

func selectColumns() bob.Mod[*dialect.SelectQuery] {
	return sm.Columns("id", "user_id", "name", "purchasing_price", "sales_price", "stock", "created_at")
}

type Reader struct {
	exec bob.Executor
}

var _ IReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// List returns the user's catalog ordered by name. When a limit is set, one
// extra row is fetched so callers can detect another page.
func (r *Reader) List(ctx context.Context, filter *ItemFilter) ([]*Item, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		selectColumns(),
		sm.From("items"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(filter.UserID))),
		sm.OrderBy("name").Asc(),
		sm.OrderBy("id").Asc(),
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Item]())
}

// FindByID retrieves one catalog entry within the user's scope.
func (r *Reader) FindByID(ctx context.Context, userID string, id uuid.UUID) (*Item, error) {
	q := psql.Select(
		selectColumns(),
		sm.From("items"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)

	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Item]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}
