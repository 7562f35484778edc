package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/khata-labs/ledger-server/internal/storage/counterparty"
)

// Counterparty represents a vendor or customer in the service layer.
type Counterparty struct {
	ID             uuid.UUID
	Kind           counterparty.Kind
	Name           string
	ContactNumbers []string
	Balance        decimal.Decimal
	CreatedAt      time.Time
}

// CounterpartyCursor identifies a position in a paginated result set.
type CounterpartyCursor struct {
	Position int
	Limit    int
}

func counterpartyFromStorage(row *counterparty.Counterparty) Counterparty {
	return Counterparty{
		ID:             row.ID,
		Kind:           row.Kind,
		Name:           row.Name,
		ContactNumbers: row.ContactNumbers,
		Balance:        row.Balance,
		CreatedAt:      row.CreatedAt,
	}
}
