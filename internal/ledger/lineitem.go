// Package ledger holds the pure domain computations shared by every
// transaction-recording flow: line-item totals, on-account balance math,
// draft validation, autocomplete filtering, and report aggregation. Nothing
// in this package performs I/O.
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one (name, quantity, unit price) entry within a transaction.
type LineItem struct {
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// Amount is quantity times unit price for a single line.
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// ParseLineItem normalizes loose form input into a LineItem. Non-numeric
// quantity or price fields become zero so the line contributes nothing to a
// total; it never fails. Validation of drafts is a separate concern, see
// ValidateLineItemDraft.
func ParseLineItem(name, quantity, unitPrice string) LineItem {
	li := LineItem{Name: strings.TrimSpace(name)}

	if qty, err := decimal.NewFromString(strings.TrimSpace(quantity)); err == nil {
		li.Quantity = qty
	}
	if price, err := decimal.NewFromString(strings.TrimSpace(unitPrice)); err == nil {
		li.UnitPrice = price
	}
	return li
}

// Total sums quantity times unit price across the ordered line items.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Amount())
	}
	return total
}
