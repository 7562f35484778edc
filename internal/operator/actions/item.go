package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/khata-labs/ledger-server/internal/storage"
	"github.com/khata-labs/ledger-server/internal/storage/item"
)

// SaveItem creates a catalog entry, or updates it when ID is set.
type SaveItem struct {
	UserID          string
	ID              uuid.UUID // zero for create
	Name            string
	PurchasingPrice decimal.Decimal
	SalesPrice      decimal.Decimal
	Stock           int64

	// Output, valid after Perform succeeds.
	ItemID uuid.UUID
}

func (a *SaveItem) Perform(ctx context.Context, writer *storage.Writer) error {
	if a.ID != uuid.Nil {
		err := writer.Item.Update(ctx, a.UserID, a.ID, &item.ItemUpdate{
			Name:            a.Name,
			PurchasingPrice: a.PurchasingPrice,
			SalesPrice:      a.SalesPrice,
			Stock:           a.Stock,
		})
		if err != nil {
			return err
		}
		a.ItemID = a.ID
		return nil
	}

	id, err := writer.Item.Insert(ctx, &item.ItemCreate{
		UserID:          a.UserID,
		Name:            a.Name,
		PurchasingPrice: a.PurchasingPrice,
		SalesPrice:      a.SalesPrice,
		Stock:           a.Stock,
	})
	if err != nil {
		return err
	}

	a.ItemID = id
	return nil
}

// DeleteItem removes a catalog entry the user owns.
type DeleteItem struct {
	UserID string
	ID     uuid.UUID
}

func (a *DeleteItem) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Item.Delete(ctx, a.UserID, a.ID)
}
