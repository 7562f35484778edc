package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/khata-labs/ledger-server/internal/storage"
	"github.com/khata-labs/ledger-server/internal/storage/counterparty"
)

// CreateCounterparty adds a vendor or customer with its opening balance.
type CreateCounterparty struct {
	UserID         string
	Kind           counterparty.Kind
	Name           string
	ContactNumbers []string
	Balance        decimal.Decimal

	// Output, valid after Perform succeeds.
	CounterpartyID uuid.UUID
}

func (a *CreateCounterparty) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Counterparty.Insert(ctx, &counterparty.CounterpartyCreate{
		UserID:         a.UserID,
		Kind:           a.Kind,
		Name:           a.Name,
		ContactNumbers: a.ContactNumbers,
		Balance:        a.Balance,
	})
	if err != nil {
		return err
	}

	a.CounterpartyID = id
	return nil
}

// UpdateCounterparty edits a counterparty the user owns.
type UpdateCounterparty struct {
	UserID         string
	ID             uuid.UUID
	Name           string
	ContactNumbers []string
	Balance        decimal.Decimal
}

func (a *UpdateCounterparty) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Counterparty.Update(ctx, a.UserID, a.ID, &counterparty.CounterpartyUpdate{
		Name:           a.Name,
		ContactNumbers: a.ContactNumbers,
		Balance:        a.Balance,
	})
}

// DeleteCounterparty removes a counterparty the user owns.
type DeleteCounterparty struct {
	UserID string
	ID     uuid.UUID
}

func (a *DeleteCounterparty) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Counterparty.Delete(ctx, a.UserID, a.ID)
}
