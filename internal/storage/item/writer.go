package item

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const uniqueViolation = "23505"

type Writer struct {
	Reader
}

func NewWriter(exec bob.Executor) *Writer {
	return &Writer{
		Reader: Reader{
			exec: exec,
		},
	}
}

// Insert creates a new catalog entry and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *ItemCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("items", "user_id", "name", "purchasing_price", "sales_price", "stock"),
		im.Values(psql.Arg(
			create.UserID,
			create.Name,
			create.PurchasingPrice,
			create.SalesPrice,
			create.Stock,
		)),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, w.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, mapUniqueViolation(err)
	}
	return id, nil
}

// Update edits a catalog entry within the user's scope.
func (w *Writer) Update(ctx context.Context, userID string, id uuid.UUID, update *ItemUpdate) error {
	q := psql.Update(
		um.Table("items"),
		um.SetCol("name").ToArg(update.Name),
		um.SetCol("purchasing_price").ToArg(update.PurchasingPrice),
		um.SetCol("sales_price").ToArg(update.SalesPrice),
		um.SetCol("stock").ToArg(update.Stock),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)

	result, err := bob.Exec(ctx, w.exec, q)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return requireRow(result)
}

// AdjustStock shifts the stock level of the catalog entry matching the line
// item name, if one exists. Unknown names are not an error: transactions may
// reference items that were never added to the catalog.
func (w *Writer) AdjustStock(ctx context.Context, userID, name string, delta int64) error {
	q := psql.Update(
		um.Table("items"),
		um.SetCol("stock").To(psql.Raw("stock + ?", psql.Arg(delta))),
		um.Where(psql.Raw("lower(name) = lower(?)", psql.Arg(name))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)

	_, err := bob.Exec(ctx, w.exec, q)
	return err
}

// Delete removes a catalog entry owned by the user.
func (w *Writer) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("items"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		dm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)

	result, err := bob.Exec(ctx, w.exec, q)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return ErrDuplicateName
	}
	return err
}
