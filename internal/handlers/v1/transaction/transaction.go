package transaction

import (
	"time"

	"github.com/khata-labs/ledger-server/internal/service"
)

// LineItem is the API model for one line of a transaction. It appears in both
// request and response bodies; quantities and prices travel as decimal strings.
type LineItem struct {
	Name      string `json:"name" required:"true" doc:"Item name"`
	Quantity  string `json:"quantity" required:"true" doc:"Whole-number quantity, must be positive"`
	UnitPrice string `json:"unitPrice" required:"true" doc:"Decimal unit price, must be positive"`
}

// Transaction is the API response model for a committed transaction.
type Transaction struct {
	ID               string     `json:"id" doc:"Transaction UUID"`
	Kind             string     `json:"kind" doc:"purchase or sale"`
	CounterpartyID   string     `json:"counterpartyID" doc:"Counterparty UUID"`
	CounterpartyName string     `json:"counterpartyName" doc:"Counterparty name at commit time"`
	LineItems        []LineItem `json:"lineItems" doc:"Ordered line items"`
	Total            string     `json:"total" doc:"Decimal sum of quantity times unit price"`
	CashPaid         string     `json:"cashPaid" doc:"Decimal cash settled at commit"`
	OnAccount        string     `json:"onAccount" doc:"Decimal amount carried on the ledger"`
	TransactionDate  string     `json:"transactionDate" doc:"RFC3339 transaction date"`
	CreatedAt        string     `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(tx service.Transaction) Transaction {
	lines := make([]LineItem, len(tx.LineItems))
	for i, li := range tx.LineItems {
		lines[i] = LineItem{
			Name:      li.Name,
			Quantity:  li.Quantity.String(),
			UnitPrice: li.UnitPrice.String(),
		}
	}

	return Transaction{
		ID:               tx.ID.String(),
		Kind:             service.TransactionKindString(tx.Kind),
		CounterpartyID:   tx.CounterpartyID.String(),
		CounterpartyName: tx.CounterpartyName,
		LineItems:        lines,
		Total:            tx.Total.String(),
		CashPaid:         tx.CashPaid.String(),
		OnAccount:        tx.OnAccount.String(),
		TransactionDate:  tx.TransactionDate.Format(time.RFC3339),
		CreatedAt:        tx.CreatedAt.Format(time.RFC3339),
	}
}
