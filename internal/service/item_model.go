package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/khata-labs/ledger-server/internal/storage/item"
)

// Item represents an item catalog entry in the service layer.
type Item struct {
	ID              uuid.UUID
	Name            string
	PurchasingPrice decimal.Decimal
	SalesPrice      decimal.Decimal
	Stock           int64
	CreatedAt       time.Time
}

// ItemCursor identifies a position in a paginated result set.
type ItemCursor struct {
	Position int
	Limit    int
}

func itemFromStorage(row *item.Item) Item {
	return Item{
		ID:              row.ID,
		Name:            row.Name,
		PurchasingPrice: row.PurchasingPrice,
		SalesPrice:      row.SalesPrice,
		Stock:           row.Stock,
		CreatedAt:       row.CreatedAt,
	}
}
