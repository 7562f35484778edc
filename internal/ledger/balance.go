package ledger

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeCash is returned when the cash amount is below zero.
	ErrNegativeCash = errors.New("cash paid cannot be negative")
	// ErrCashExceedsCap is returned when the cash amount exceeds the prior
	// balance plus the transaction total. Over-payment is rejected, never
	// silently clamped.
	ErrCashExceedsCap = errors.New("cash paid exceeds prior balance plus total")
)

// OnAccount computes the credit carried forward by a transaction:
// priorBalance + total - cashPaid. The cash input must lie in
// [0, priorBalance+total]; inputs outside the range are rejected so the
// result is never negative through over-payment.
func OnAccount(priorBalance, total, cashPaid decimal.Decimal) (decimal.Decimal, error) {
	if cashPaid.IsNegative() {
		return decimal.Zero, ErrNegativeCash
	}

	limit := priorBalance.Add(total)
	if cashPaid.GreaterThan(limit) {
		return decimal.Zero, ErrCashExceedsCap
	}

	return limit.Sub(cashPaid), nil
}
