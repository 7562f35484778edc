package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/khata-labs/ledger-server/internal/ledger"
	"github.com/khata-labs/ledger-server/internal/storage/transaction"
)

// Transaction represents a committed purchase or sale in the service layer.
type Transaction struct {
	ID               uuid.UUID
	Kind             transaction.Kind
	CounterpartyID   uuid.UUID
	CounterpartyName string
	LineItems        []ledger.LineItem
	Total            decimal.Decimal
	CashPaid         decimal.Decimal
	OnAccount        decimal.Decimal
	TransactionDate  time.Time
	CreatedAt        time.Time
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

func transactionFromStorage(row *transaction.Transaction) Transaction {
	lines := make([]ledger.LineItem, len(row.LineItems))
	for i, li := range row.LineItems {
		lines[i] = ledger.LineItem{
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		}
	}

	return Transaction{
		ID:               row.ID,
		Kind:             row.Kind,
		CounterpartyID:   row.CounterpartyID,
		CounterpartyName: row.CounterpartyName,
		LineItems:        lines,
		Total:            row.Total,
		CashPaid:         row.CashPaid,
		OnAccount:        row.OnAccount,
		TransactionDate:  row.TransactionDate,
		CreatedAt:        row.CreatedAt,
	}
}
