package actions

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/khata-labs/ledger-server/internal/ledger"
	"github.com/khata-labs/ledger-server/internal/storage"
	"github.com/khata-labs/ledger-server/internal/storage/counterparty"
	"github.com/khata-labs/ledger-server/internal/storage/transaction"
)

// CommitTransaction records a purchase or sale and applies its balance
// movement to the counterparty in the same database transaction. The old
// client did these as two independent remote writes and could leave the
// balance stale when the second failed; here a failure at any step rolls
// the whole commit back.
type CommitTransaction struct {
	UserID           string
	Kind             transaction.Kind
	CounterpartyID   uuid.UUID // optional; resolved by name when zero
	CounterpartyName string
	LineItems        []ledger.LineItem
	CashPaid         decimal.Decimal
	TransactionDate  time.Time
	AdjustStock      bool

	// Outputs, valid after Perform succeeds.
	TransactionID uuid.UUID
	Total         decimal.Decimal
	OnAccount     decimal.Decimal
	NewBalance    decimal.Decimal
}

func (a *CommitTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	cp, err := a.lockCounterparty(ctx, writer)
	if err != nil {
		return err
	}

	total := ledger.Total(a.LineItems)
	onAccount, err := ledger.OnAccount(cp.Balance, total, a.CashPaid)
	if err != nil {
		return ledger.FieldErrors{"cashPaid": "Cash cannot exceed the prior balance plus the total."}
	}

	lines := make(transaction.LineItems, len(a.LineItems))
	for i, li := range a.LineItems {
		lines[i] = transaction.LineItem{
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		}
	}

	txID, err := writer.Transaction.Insert(ctx, &transaction.TransactionCreate{
		UserID:           a.UserID,
		Kind:             a.Kind,
		CounterpartyID:   cp.ID,
		CounterpartyName: cp.Name,
		LineItems:        lines,
		Total:            total,
		CashPaid:         a.CashPaid,
		OnAccount:        onAccount,
		TransactionDate:  a.TransactionDate,
	})
	if err != nil {
		return err
	}

	// The counterparty's running balance after this transaction equals the
	// on-account amount: prior + total - cash.
	if err := writer.Counterparty.UpdateBalance(ctx, a.UserID, cp.ID, onAccount); err != nil {
		return err
	}

	if a.AdjustStock {
		if err := a.applyStock(ctx, writer); err != nil {
			return err
		}
	}

	a.TransactionID = txID
	a.Total = total
	a.OnAccount = onAccount
	a.NewBalance = onAccount
	return nil
}

// lockCounterparty resolves the counterparty by id or name and takes a row
// lock so concurrent commits serialize on the balance.
func (a *CommitTransaction) lockCounterparty(ctx context.Context, writer *storage.Writer) (*counterparty.Counterparty, error) {
	id := a.CounterpartyID

	if id == uuid.Nil {
		kind := counterpartyKind(a.Kind)
		siblings, err := writer.Counterparty.List(ctx, &counterparty.CounterpartyFilter{
			UserID: a.UserID,
			Kind:   &kind,
		})
		if err != nil {
			return nil, err
		}

		wanted := strings.ToLower(strings.TrimSpace(a.CounterpartyName))
		for _, sibling := range siblings {
			if strings.ToLower(strings.TrimSpace(sibling.Name)) == wanted {
				id = sibling.ID
				break
			}
		}
		if id == uuid.Nil {
			return nil, ledger.FieldErrors{"counterpartyName": "Unknown counterparty."}
		}
	}

	return writer.Counterparty.FindByIDForUpdate(ctx, a.UserID, id)
}

// applyStock moves catalog stock for each line: purchases receive stock,
// sales consume it. Lines naming items outside the catalog are skipped.
func (a *CommitTransaction) applyStock(ctx context.Context, writer *storage.Writer) error {
	for _, li := range a.LineItems {
		delta := li.Quantity.IntPart()
		if a.Kind == transaction.KindSale {
			delta = -delta
		}
		if delta == 0 {
			continue
		}
		if err := writer.Item.AdjustStock(ctx, a.UserID, li.Name, delta); err != nil {
			return err
		}
	}
	return nil
}

func counterpartyKind(kind transaction.Kind) counterparty.Kind {
	if kind == transaction.KindSale {
		return counterparty.KindCustomer
	}
	return counterparty.KindVendor
}
