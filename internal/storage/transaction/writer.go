package transaction

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/scan"
)

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

// Insert records a new transaction and returns its generated ID.
func (w *Writer) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	transactionDate := create.TransactionDate
	if transactionDate.IsZero() {
		transactionDate = time.Now()
	}

	q := psql.Insert(
		im.Into("transactions",
			"user_id", "kind", "counterparty_id", "counterparty_name",
			"line_items", "total", "cash_paid", "on_account", "transaction_date",
		),
		im.Values(psql.Arg(
			create.UserID,
			int16(create.Kind),
			create.CounterpartyID,
			create.CounterpartyName,
			create.LineItems,
			create.Total,
			create.CashPaid,
			create.OnAccount,
			transactionDate,
		)),
		im.Returning("id"),
	)

	return bob.One(ctx, w.exec, q, scan.SingleColumnMapper[uuid.UUID])
}
