package item

import (
	"time"

	"github.com/khata-labs/ledger-server/internal/service"
)

// Item is the API response model for a catalog entry.
// It is used only for responses, not for request bodies.
type Item struct {
	ID              string `json:"id" doc:"Item UUID"`
	Name            string `json:"name" doc:"Item name"`
	PurchasingPrice string `json:"purchasingPrice" doc:"Decimal purchasing price"`
	SalesPrice      string `json:"salesPrice" doc:"Decimal sales price"`
	Stock           int64  `json:"stock" doc:"Units on hand"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(it service.Item) Item {
	return Item{
		ID:              it.ID.String(),
		Name:            it.Name,
		PurchasingPrice: it.PurchasingPrice.String(),
		SalesPrice:      it.SalesPrice.String(),
		Stock:           it.Stock,
		CreatedAt:       it.CreatedAt.Format(time.RFC3339),
	}
}
