package transaction

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no row matches the id within the caller's
// user scope.
var ErrNotFound = errors.New("transaction not found")

// Kind distinguishes purchases from sales.
type Kind int16

const (
	KindPurchase Kind = iota
	KindSale
)

// LineItem is one line of a committed transaction, embedded in the record.
type LineItem struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// LineItems is stored as a jsonb array.
type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *LineItems) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("line items: cannot scan %T", src)
	}
}

// Transaction represents a committed purchase or sale. Records are immutable
// once inserted; there is no update path.
type Transaction struct {
	ID               uuid.UUID       `db:"id"`
	UserID           string          `db:"user_id"`
	Kind             Kind            `db:"kind"`
	CounterpartyID   uuid.UUID       `db:"counterparty_id"`
	CounterpartyName string          `db:"counterparty_name"`
	LineItems        LineItems       `db:"line_items"`
	Total            decimal.Decimal `db:"total"`
	CashPaid         decimal.Decimal `db:"cash_paid"`
	OnAccount        decimal.Decimal `db:"on_account"`
	TransactionDate  time.Time       `db:"transaction_date"`
	CreatedAt        time.Time       `db:"created_at"`
}

// TransactionCreate is the input for recording a new transaction.
type TransactionCreate struct {
	UserID           string
	Kind             Kind
	CounterpartyID   uuid.UUID
	CounterpartyName string
	LineItems        LineItems
	Total            decimal.Decimal
	CashPaid         decimal.Decimal
	OnAccount        decimal.Decimal
	TransactionDate  time.Time // defaults to now if zero
}

// TransactionFilter specifies filters for listing transactions. UserID is
// mandatory; Limit of zero means no paging.
type TransactionFilter struct {
	UserID          string
	Kind            *Kind
	CounterpartyID  *uuid.UUID
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// IReader defines the read-side interface for transaction storage.
type IReader interface {
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	FindByID(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error)
}
