package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/khata-labs/ledger-server/internal/ledger"
	"github.com/khata-labs/ledger-server/internal/operator"
	"github.com/khata-labs/ledger-server/internal/operator/actions"
	"github.com/khata-labs/ledger-server/internal/storage"
	"github.com/khata-labs/ledger-server/internal/storage/transaction"
)

const defaultTransactionLimit = 20

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  *storage.Storage
	operator operator.Processor
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, processor operator.Processor) *TransactionService {
	return &TransactionService{storage: store, operator: processor}
}

// CommitRequest is the input for recording a purchase or sale.
type CommitRequest struct {
	Kind             transaction.Kind
	CounterpartyID   uuid.UUID // optional; resolved by name when zero
	CounterpartyName string
	LineItems        []ledger.LineItemDraft
	CashPaid         string
	TransactionDate  time.Time
	AdjustStock      bool
}

// CommitResult reports the computed amounts of a committed transaction.
type CommitResult struct {
	TransactionID uuid.UUID
	Total         decimal.Decimal
	CashPaid      decimal.Decimal
	OnAccount     decimal.Decimal
	NewBalance    decimal.Decimal
}

// Commit validates the request, then records the transaction and moves the
// counterparty balance in a single database transaction.
func (s *TransactionService) Commit(ctx context.Context, userID string, req CommitRequest) (*CommitResult, error) {
	if errs := validateCommitRequest(req); len(errs) > 0 {
		return nil, errs
	}

	lines := make([]ledger.LineItem, len(req.LineItems))
	for i, draft := range req.LineItems {
		lines[i] = ledger.ParseLineItem(draft.Name, draft.Quantity, draft.UnitPrice)
	}

	cashPaid := decimal.Zero
	if cash := strings.TrimSpace(req.CashPaid); cash != "" {
		parsed, err := decimal.NewFromString(cash)
		if err != nil {
			return nil, ledger.FieldErrors{"cashPaid": "Enter a valid cash amount"}
		}
		cashPaid = parsed
	}

	action := &actions.CommitTransaction{
		UserID:           userID,
		Kind:             req.Kind,
		CounterpartyID:   req.CounterpartyID,
		CounterpartyName: req.CounterpartyName,
		LineItems:        lines,
		CashPaid:         cashPaid,
		TransactionDate:  req.TransactionDate,
		AdjustStock:      req.AdjustStock,
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}

	return &CommitResult{
		TransactionID: action.TransactionID,
		Total:         action.Total,
		CashPaid:      cashPaid,
		OnAccount:     action.OnAccount,
		NewBalance:    action.NewBalance,
	}, nil
}

// GetTransaction retrieves a transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	converted := transactionFromStorage(row)
	return &converted, nil
}

// ListTransactions returns a page of transactions using cursor-based
// pagination, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, userID string, kind *transaction.Kind, counterpartyID *uuid.UUID, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultTransactionLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	filter := &transaction.TransactionFilter{
		UserID:          userID,
		Kind:            kind,
		CounterpartyID:  counterpartyID,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}

	rows, err := s.storage.Transactions.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}

	return converted, nextCursor, nil
}

// validateCommitRequest runs the submit-level checks plus the per-line checks,
// prefixing line errors with their index so the caller can attribute them.
func validateCommitRequest(req CommitRequest) ledger.FieldErrors {
	errs := ledger.FieldErrors{}

	draft := ledger.TransactionDraft{
		CounterpartyName: req.CounterpartyName,
		LineItems:        req.LineItems,
		CashPaid:         req.CashPaid,
	}
	if req.CounterpartyID != uuid.Nil {
		// An explicit id satisfies the counterparty requirement on its own.
		draft.CounterpartyName = req.CounterpartyName
		if strings.TrimSpace(draft.CounterpartyName) == "" {
			draft.CounterpartyName = req.CounterpartyID.String()
		}
	}
	for field, msg := range ledger.ValidateTransactionDraft(draft) {
		errs[field] = msg
	}

	siblings := make([]ledger.NamedRecord, len(req.LineItems))
	for i, line := range req.LineItems {
		siblings[i] = ledger.NamedRecord{ID: fmt.Sprintf("%d", i), Name: line.Name}
	}
	for i, line := range req.LineItems {
		line.ID = fmt.Sprintf("%d", i)
		for field, msg := range ledger.ValidateLineItemDraft(line, siblings) {
			errs[fmt.Sprintf("lineItems[%d].%s", i, field)] = msg
		}
	}

	return errs
}
