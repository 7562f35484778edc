package service

import (
	"fmt"

	"github.com/khata-labs/ledger-server/internal/storage/counterparty"
	"github.com/khata-labs/ledger-server/internal/storage/transaction"
)

// ParseCounterpartyKind maps the wire value to the storage enum.
func ParseCounterpartyKind(s string) (counterparty.Kind, error) {
	switch s {
	case "vendor":
		return counterparty.KindVendor, nil
	case "customer":
		return counterparty.KindCustomer, nil
	default:
		return 0, fmt.Errorf("unknown counterparty kind %q", s)
	}
}

// CounterpartyKindString maps the storage enum back to the wire value.
func CounterpartyKindString(kind counterparty.Kind) string {
	if kind == counterparty.KindCustomer {
		return "customer"
	}
	return "vendor"
}

// ParseTransactionKind maps the wire value to the storage enum.
func ParseTransactionKind(s string) (transaction.Kind, error) {
	switch s {
	case "purchase":
		return transaction.KindPurchase, nil
	case "sale":
		return transaction.KindSale, nil
	default:
		return 0, fmt.Errorf("unknown transaction kind %q", s)
	}
}

// TransactionKindString maps the storage enum back to the wire value.
func TransactionKindString(kind transaction.Kind) string {
	if kind == transaction.KindSale {
		return "sale"
	}
	return "purchase"
}
