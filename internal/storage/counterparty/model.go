package counterparty

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no row matches the id within the caller's
	// user scope. Rows owned by other users are indistinguishable from
	// missing rows on purpose.
	ErrNotFound = errors.New("counterparty not found")
	// ErrDuplicateName is returned when an insert or rename collides with the
	// per-user case-insensitive unique name index.
	ErrDuplicateName = errors.New("counterparty name already exists")
)

// Kind distinguishes the purchase side from the sales side.
type Kind int16

const (
	KindVendor Kind = iota
	KindCustomer
)

// ContactNumbers is stored as a jsonb array.
type ContactNumbers []string

func (c ContactNumbers) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *ContactNumbers) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		*c = nil
		return nil
	default:
		return fmt.Errorf("contact numbers: cannot scan %T", src)
	}
}

// Counterparty represents a vendor or customer record.
type Counterparty struct {
	ID             uuid.UUID       `db:"id"`
	UserID         string          `db:"user_id"`
	Kind           Kind            `db:"kind"`
	Name           string          `db:"name"`
	ContactNumbers ContactNumbers  `db:"contact_numbers"`
	Balance        decimal.Decimal `db:"balance"`
	CreatedAt      time.Time       `db:"created_at"`
}

// DisplayName is the name shown in autocomplete lists.
func (c *Counterparty) DisplayName() string {
	return c.Name
}

// CounterpartyCreate is the input for creating a new counterparty.
type CounterpartyCreate struct {
	UserID         string
	Kind           Kind
	Name           string
	ContactNumbers []string
	Balance        decimal.Decimal
}

// CounterpartyUpdate is the input for editing an existing counterparty.
type CounterpartyUpdate struct {
	Name           string
	ContactNumbers []string
	Balance        decimal.Decimal
}

// CounterpartyFilter specifies filters for listing counterparties. UserID is
// mandatory; Limit of zero means no paging.
type CounterpartyFilter struct {
	UserID string
	Kind   *Kind
	Limit  int
	Offset int
}

// IReader defines the read-side interface for counterparty storage.
type IReader interface {
	List(ctx context.Context, filter *CounterpartyFilter) ([]*Counterparty, error)
	FindByID(ctx context.Context, userID string, id uuid.UUID) (*Counterparty, error)
}
