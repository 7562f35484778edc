package item

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no row matches the id within the caller's
	// user scope.
	ErrNotFound = errors.New("item not found")
	// ErrDuplicateName is returned when an insert or rename collides with the
	// per-user case-insensitive unique name index.
	ErrDuplicateName = errors.New("item name already exists")
)

// Item represents an item catalog entry.
type Item struct {
	ID              uuid.UUID       `db:"id"`
	UserID          string          `db:"user_id"`
	Name            string          `db:"name"`
	PurchasingPrice decimal.Decimal `db:"purchasing_price"`
	SalesPrice      decimal.Decimal `db:"sales_price"`
	Stock           int64           `db:"stock"`
	CreatedAt       time.Time       `db:"created_at"`
}

// DisplayName is the name shown in autocomplete lists.
func (i *Item) DisplayName() string {
	return i.Name
}

// ItemCreate is the input for creating a new catalog entry.
type ItemCreate struct {
	UserID          string
	Name            string
	PurchasingPrice decimal.Decimal
	SalesPrice      decimal.Decimal
	Stock           int64
}

// ItemUpdate is the input for editing a catalog entry.
type ItemUpdate struct {
	Name            string
	PurchasingPrice decimal.Decimal
	SalesPrice      decimal.Decimal
	Stock           int64
}

// ItemFilter specifies filters for listing items. UserID is mandatory; Limit
// of zero means no paging.
type ItemFilter struct {
	UserID string
	Limit  int
	Offset int
}

// IReader defines the read-side interface for item storage.
type IReader interface {
	List(ctx context.Context, filter *ItemFilter) ([]*Item, error)
	FindByID(ctx context.Context, userID string, id uuid.UUID) (*Item, error)
}
