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
	"github.com/khata-labs/ledger-server/internal/storage/counterparty"
)

const defaultCounterpartyLimit = 20

// CounterpartyService handles vendor and customer business logic.
type CounterpartyService struct {
	storage  *storage.Storage
	operator operator.Processor
}

// NewCounterpartyService creates a new CounterpartyService.
func NewCounterpartyService(store *storage.Storage, processor operator.Processor) *CounterpartyService {
	return &CounterpartyService{storage: store, operator: processor}
}

// CreateCounterparty validates the draft against its siblings of the same
// kind, then creates the record and returns its ID.
func (s *CounterpartyService) CreateCounterparty(ctx context.Context, userID string, kind counterparty.Kind, draft ledger.CounterpartyDraft) (uuid.UUID, error) {
	draft.ID = ""
	balance, err := s.validateDraft(ctx, userID, kind, draft)
	if err != nil {
		return uuid.Nil, err
	}

	action := &actions.CreateCounterparty{
		UserID:         userID,
		Kind:           kind,
		Name:           strings.TrimSpace(draft.Name),
		ContactNumbers: cleanContactNumbers(draft.ContactNumbers),
		Balance:        balance,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return uuid.Nil, mapCounterpartyWriteErr(err)
	}

	return action.CounterpartyID, nil
}

// UpdateCounterparty validates the draft and applies the edit. The record
// being edited is excluded from the duplicate-name check.
func (s *CounterpartyService) UpdateCounterparty(ctx context.Context, userID string, kind counterparty.Kind, id uuid.UUID, draft ledger.CounterpartyDraft) error {
	draft.ID = id.String()
	balance, err := s.validateDraft(ctx, userID, kind, draft)
	if err != nil {
		return err
	}

	action := &actions.UpdateCounterparty{
		UserID:         userID,
		ID:             id,
		Name:           strings.TrimSpace(draft.Name),
		ContactNumbers: cleanContactNumbers(draft.ContactNumbers),
		Balance:        balance,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return mapCounterpartyWriteErr(err)
	}
	return nil
}

// DeleteCounterparty removes a counterparty the user owns.
func (s *CounterpartyService) DeleteCounterparty(ctx context.Context, userID string, id uuid.UUID) error {
	return s.operator.Process(ctx, &actions.DeleteCounterparty{UserID: userID, ID: id})
}

// GetCounterparty retrieves a counterparty by ID.
func (s *CounterpartyService) GetCounterparty(ctx context.Context, userID string, id uuid.UUID) (*Counterparty, error) {
	row, err := s.storage.Counterparties.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	converted := counterpartyFromStorage(row)
	return &converted, nil
}

// ListCounterparties returns a page of counterparties using cursor
// pagination. A non-empty query switches to name filtering over the full set
// and disables paging.
func (s *CounterpartyService) ListCounterparties(ctx context.Context, userID string, kind *counterparty.Kind, query string, cursor *CounterpartyCursor) ([]Counterparty, *CounterpartyCursor, error) {
	if strings.TrimSpace(query) != "" {
		rows, err := s.storage.Counterparties.List(ctx, &counterparty.CounterpartyFilter{
			UserID: userID,
			Kind:   kind,
		})
		if err != nil {
			return nil, nil, err
		}

		matches := ledger.FilterSuggestions(query, rows)
		converted := make([]Counterparty, len(matches))
		for i, row := range matches {
			converted[i] = counterpartyFromStorage(row)
		}
		return converted, nil, nil
	}

	limit := defaultCounterpartyLimit
	offset := 0
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
	}

	rows, err := s.storage.Counterparties.List(ctx, &counterparty.CounterpartyFilter{
		UserID: userID,
		Kind:   kind,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *CounterpartyCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &CounterpartyCursor{
			Position: offset + limit,
			Limit:    limit,
		}
	}

	converted := make([]Counterparty, len(rows))
	for i, row := range rows {
		converted[i] = counterpartyFromStorage(row)
	}

	return converted, nextCursor, nil
}

// SuggestCounterparties returns the counterparties of the kind whose name
// contains the query. An empty query yields no suggestions.
func (s *CounterpartyService) SuggestCounterparties(ctx context.Context, userID string, kind counterparty.Kind, query string) ([]Counterparty, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	rows, err := s.storage.Counterparties.List(ctx, &counterparty.CounterpartyFilter{
		UserID: userID,
		Kind:   &kind,
	})
	if err != nil {
		return nil, err
	}

	matches := ledger.FilterSuggestions(query, rows)
	converted := make([]Counterparty, len(matches))
	for i, row := range matches {
		converted[i] = counterpartyFromStorage(row)
	}
	return converted, nil
}

// validateDraft runs the field checks against the user's existing records of
// the same kind and parses the opening balance.
func (s *CounterpartyService) validateDraft(ctx context.Context, userID string, kind counterparty.Kind, draft ledger.CounterpartyDraft) (decimal.Decimal, error) {
	siblings, err := s.storage.Counterparties.List(ctx, &counterparty.CounterpartyFilter{
		UserID: userID,
		Kind:   &kind,
	})
	if err != nil {
		return decimal.Zero, err
	}

	records := make([]ledger.NamedRecord, len(siblings))
	for i, sibling := range siblings {
		records[i] = ledger.NamedRecord{ID: sibling.ID.String(), Name: sibling.Name}
	}

	if errs := ledger.ValidateCounterpartyDraft(draft, records); len(errs) > 0 {
		return decimal.Zero, errs
	}

	balance, err := decimal.NewFromString(strings.TrimSpace(draft.Balance))
	if err != nil {
		return decimal.Zero, ledger.FieldErrors{"balance": "Enter a valid number."}
	}
	return balance, nil
}

func cleanContactNumbers(numbers []string) []string {
	cleaned := make([]string, 0, len(numbers))
	for _, num := range numbers {
		if trimmed := strings.TrimSpace(num); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// mapCounterpartyWriteErr converts the unique-index race backstop into the
// same field error the pre-check produces.
func mapCounterpartyWriteErr(err error) error {
	if errors.Is(err, counterparty.ErrDuplicateName) {
		return ledger.FieldErrors{"name": "Name already exists."}
	}
	return err
}
