package counterparty

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
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

// FindByIDForUpdate locks the counterparty row for the rest of the
// transaction so balance updates cannot race.
func (w *Writer) FindByIDForUpdate(ctx context.Context, userID string, id uuid.UUID) (*Counterparty, error) {
	q := psql.Select(
		selectColumns(),
		sm.From("counterparties"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.ForUpdate(),
	)

	row, err := bob.One(ctx, w.exec, q, scan.StructMapper[*Counterparty]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}

// Insert creates a new counterparty and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *CounterpartyCreate) (uuid.UUID, error) {
	q := psql.Insert(
		im.Into("counterparties", "user_id", "kind", "name", "contact_numbers", "balance"),
		im.Values(psql.Arg(
			create.UserID,
			int16(create.Kind),
			create.Name,
			ContactNumbers(create.ContactNumbers),
			create.Balance,
		)),
		im.Returning("id"),
	)

	id, err := bob.One(ctx, w.exec, q, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, mapUniqueViolation(err)
	}
	return id, nil
}

// Update edits name, contacts, and balance within the user's scope.
func (w *Writer) Update(ctx context.Context, userID string, id uuid.UUID, update *CounterpartyUpdate) error {
	q := psql.Update(
		um.Table("counterparties"),
		um.SetCol("name").ToArg(update.Name),
		um.SetCol("contact_numbers").ToArg(ContactNumbers(update.ContactNumbers)),
		um.SetCol("balance").ToArg(update.Balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)

	result, err := bob.Exec(ctx, w.exec, q)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return requireRow(result)
}

// UpdateBalance replaces the stored balance for a given counterparty.
func (w *Writer) UpdateBalance(ctx context.Context, userID string, id uuid.UUID, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table("counterparties"),
		um.SetCol("balance").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)

	result, err := bob.Exec(ctx, w.exec, q)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// Delete removes a counterparty owned by the user.
func (w *Writer) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	q := psql.Delete(
		dm.From("counterparties"),
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
