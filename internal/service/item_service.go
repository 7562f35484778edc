package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/khata-labs/ledger-server/internal/ledger"
	"github.com/khata-labs/ledger-server/internal/operator"
	"github.com/khata-labs/ledger-server/internal/operator/actions"
	"github.com/khata-labs/ledger-server/internal/storage"
	"github.com/khata-labs/ledger-server/internal/storage/item"
)

const defaultItemLimit = 20

// ItemService handles item catalog business logic.
type ItemService struct {
	storage  *storage.Storage
	operator operator.Processor
}

// NewItemService creates a new ItemService.
func NewItemService(store *storage.Storage, processor operator.Processor) *ItemService {
	return &ItemService{storage: store, operator: processor}
}

// CreateItem validates the draft against the catalog and creates the entry.
func (s *ItemService) CreateItem(ctx context.Context, userID string, draft ledger.ItemDraft) (uuid.UUID, error) {
	draft.ID = ""
	return s.saveItem(ctx, userID, uuid.Nil, draft)
}

// UpdateItem validates the draft and applies the edit. The entry being edited
// is excluded from the duplicate-name check.
func (s *ItemService) UpdateItem(ctx context.Context, userID string, id uuid.UUID, draft ledger.ItemDraft) error {
	draft.ID = id.String()
	_, err := s.saveItem(ctx, userID, id, draft)
	return err
}

// DeleteItem removes a catalog entry the user owns.
func (s *ItemService) DeleteItem(ctx context.Context, userID string, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteItem{UserID: userID, ID: id})
}

// GetItem retrieves a catalog entry by ID.
func (s *ItemService) GetItem(ctx context.Context, userID string, id uuid.UUID) (*Item, error) {
	row, err := s.storage.Items.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	converted := itemFromStorage(row)
	return &converted, nil
}

// ListItems returns a page of catalog entries using cursor pagination. A
// non-empty query switches to name filtering over the full catalog and
// disables paging.
func (s *ItemService) ListItems(ctx context.Context, userID string, query string, cursor *ItemCursor) ([]Item, *ItemCursor, error) {
	if strings.TrimSpace(query) != "" {
		rows, err := s.storage.Items.List(ctx, &item.ItemFilter{UserID: userID})
		if err != nil {
			return nil, nil, err
		}

		matches := ledger.FilterSuggestions(query, rows)
		converted := make([]Item, len(matches))
		for i, row := range matches {
			converted[i] = itemFromStorage(row)
		}
		return converted, nil, nil
	}

	limit := defaultItemLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.storage.Items.List(ctx, &item.ItemFilter{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *ItemCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &ItemCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	converted := make([]Item, len(rows))
	for i, row := range rows {
		converted[i] = itemFromStorage(row)
	}

	return converted, nextCursor, nil
}

// SuggestItems returns the catalog entries whose name contains the query,
// with their prices so a selected suggestion can prefill a line. An empty
// query yields no suggestions.
func (s *ItemService) SuggestItems(ctx context.Context, userID string, query string) ([]Item, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	rows, err := s.storage.Items.List(ctx, &item.ItemFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	matches := ledger.FilterSuggestions(query, rows)
	converted := make([]Item, len(matches))
	for i, row := range matches {
		converted[i] = itemFromStorage(row)
	}
	return converted, nil
}

func (s *ItemService) saveItem(ctx context.Context, userID string, id uuid.UUID, draft ledger.ItemDraft) (uuid.UUID, error) {
	siblings, err := s.storage.Items.List(ctx, &item.ItemFilter{UserID: userID})
	if err != nil {
		return uuid.Nil, err
	}

	records := make([]ledger.NamedRecord, len(siblings))
	for i, sibling := range siblings {
		records[i] = ledger.NamedRecord{ID: sibling.ID.String(), Name: sibling.Name}
	}

	if errs := ledger.ValidateItemDraft(draft, records); len(errs) > 0 {
		return uuid.Nil, errs
	}

	purchasingPrice, err := decimal.NewFromString(strings.TrimSpace(draft.PurchasingPrice))
	if err != nil {
		return uuid.Nil, ledger.FieldErrors{"purchasingPrice": "Enter a valid purchasing price."}
	}
	salesPrice, err := decimal.NewFromString(strings.TrimSpace(draft.SalesPrice))
	if err != nil {
		return uuid.Nil, ledger.FieldErrors{"salesPrice": "Enter a valid sales price."}
	}
	quantity, err := decimal.NewFromString(strings.TrimSpace(draft.Quantity))
	if err != nil {
		return uuid.Nil, ledger.FieldErrors{"quantity": "Enter a valid quantity."}
	}

	action := &actions.SaveItem{
		UserID:          userID,
		ID:              id,
		Name:            strings.TrimSpace(draft.Name),
		PurchasingPrice: purchasingPrice,
		SalesPrice:      salesPrice,
		Stock:           quantity.IntPart(),
	}
	if err := s.operator.Process(ctx, action); err != nil {
		if errors.Is(err, item.ErrDuplicateName) {
			return uuid.Nil, ledger.FieldErrors{"name": "Item name already exists."}
		}
		return uuid.Nil, err
	}

	return action.ItemID, nil
}
