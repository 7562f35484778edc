package counterparty

import (
	"time"

	"github.com/khata-labs/ledger-server/internal/service"
)

// Counterparty is the API response model for a vendor or customer.
// It is used only for responses, not for request bodies.
type Counterparty struct {
	ID             string   `json:"id" doc:"Counterparty UUID"`
	Kind           string   `json:"kind" doc:"vendor or customer"`
	Name           string   `json:"name" doc:"Display name"`
	ContactNumbers []string `json:"contactNumbers" doc:"Contact numbers"`
	Balance        string   `json:"balance" doc:"Outstanding decimal balance"`
	CreatedAt      string   `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(cp service.Counterparty) Counterparty {
	return Counterparty{
		ID:             cp.ID.String(),
		Kind:           service.CounterpartyKindString(cp.Kind),
		Name:           cp.Name,
		ContactNumbers: cp.ContactNumbers,
		Balance:        cp.Balance.String(),
		CreatedAt:      cp.CreatedAt.Format(time.RFC3339),
	}
}
