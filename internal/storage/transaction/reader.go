package transaction

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
	return sm.Columns(
		"id", "user_id", "kind", "counterparty_id", "counterparty_name",
		"line_items", "total", "cash_paid", "on_account",
		"transaction_date", "created_at",
	)
}

type Reader struct {
	exec bob.Executor
}

var _ IReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// List returns the user's transactions, newest first. When a limit is set,
// one extra row is fetched so callers can detect another page.
func (r *Reader) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		selectColumns(),
		sm.From("transactions"),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(filter.UserID))),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Desc(),
	}
	if filter.Kind != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("kind").EQ(psql.Arg(int16(*filter.Kind)))))
	}
	if filter.CounterpartyID != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("counterparty_id").EQ(psql.Arg(*filter.CounterpartyID))))
	}
	if filter.MaxCreationTime != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
	}
	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit+1))
	}
	if filter.Offset > 0 {
		queryMods = append(queryMods, sm.Offset(filter.Offset))
	}

	return bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
}

// FindByID retrieves one transaction within the user's scope.
func (r *Reader) FindByID(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		selectColumns(),
		sm.From("transactions"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)

	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[*Transaction]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}
