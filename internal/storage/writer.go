package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/khata-labs/ledger-server/internal/storage/counterparty"
	"github.com/khata-labs/ledger-server/internal/storage/item"
	"github.com/khata-labs/ledger-server/internal/storage/transaction"
)

// Tx is the handle a Writer drives. bob.Tx satisfies it.
type Tx interface {
	bob.Executor
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer groups the entity writers over one database transaction. All
// mutations performed through it become durable together on Commit or not
// at all.
type Writer struct {
	tx           Tx
	Counterparty *counterparty.Writer
	Item         *item.Writer
	Transaction  *transaction.Writer
}

func NewWriter(tx Tx) *Writer {
	return &Writer{
		tx:           tx,
		Counterparty: counterparty.NewWriter(tx),
		Item:         item.NewWriter(tx),
		Transaction:  transaction.NewWriter(tx),
	}
}

// Write opens a transaction and returns a Writer over it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bdb.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
