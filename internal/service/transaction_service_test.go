package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/khata-labs/ledger-server/internal/ledger"
	"github.com/khata-labs/ledger-server/internal/operator/actions"
	"github.com/khata-labs/ledger-server/internal/storage"
	"github.com/khata-labs/ledger-server/internal/storage/transaction"
)

func newTransactionTestService(t *testing.T) (*TransactionService, *mockTransactionReader, *mockProcessor) {
	t.Helper()
	reader := &mockTransactionReader{}
	processor := &mockProcessor{}
	store := &storage.Storage{Transactions: reader}
	svc := NewTransactionService(store, processor)
	return svc, reader, processor
}

// -- Commit tests --

func TestCommit_Success(t *testing.T) {
	svc, _, processor := newTransactionTestService(t)

	txID := uuid.Must(uuid.NewV4())
	processor.perform = func(a actions.IAction) {
		commit := a.(*actions.CommitTransaction)
		commit.TransactionID = txID
		commit.Total = decimal.RequireFromString("350")
		commit.OnAccount = decimal.RequireFromString("650")
		commit.NewBalance = decimal.RequireFromString("650")
	}
	processor.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		commit, ok := a.(*actions.CommitTransaction)
		return ok &&
			commit.UserID == "user-1" &&
			commit.Kind == transaction.KindPurchase &&
			commit.CounterpartyName == "Acme Traders" &&
			len(commit.LineItems) == 2 &&
			commit.LineItems[0].Quantity.Equal(decimal.NewFromInt(10)) &&
			commit.LineItems[1].UnitPrice.Equal(decimal.RequireFromString("25")) &&
			commit.CashPaid.Equal(decimal.NewFromInt(200))
	})).Return(nil)

	result, err := svc.Commit(context.Background(), "user-1", CommitRequest{
		Kind:             transaction.KindPurchase,
		CounterpartyName: "Acme Traders",
		LineItems: []ledger.LineItemDraft{
			{Name: "Rice", Quantity: "10", UnitPrice: "10"},
			{Name: "Flour", Quantity: "10", UnitPrice: "25"},
		},
		CashPaid: "200",
	})

	assert.NoError(t, err)
	assert.Equal(t, txID, result.TransactionID)
	assert.True(t, result.Total.Equal(decimal.RequireFromString("350")))
	assert.True(t, result.OnAccount.Equal(decimal.RequireFromString("650")))
	assert.True(t, result.NewBalance.Equal(decimal.RequireFromString("650")))
	assert.True(t, result.CashPaid.Equal(decimal.NewFromInt(200)))
}

func TestCommit_NoLineItems(t *testing.T) {
	svc, _, processor := newTransactionTestService(t)

	result, err := svc.Commit(context.Background(), "user-1", CommitRequest{
		Kind:             transaction.KindSale,
		CounterpartyName: "Acme Traders",
	})

	assert.Nil(t, result)
	var fieldErrs ledger.FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "lineItems")
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestCommit_LineErrorsCarryTheirIndex(t *testing.T) {
	svc, _, processor := newTransactionTestService(t)

	_, err := svc.Commit(context.Background(), "user-1", CommitRequest{
		Kind:             transaction.KindPurchase,
		CounterpartyName: "Acme Traders",
		LineItems: []ledger.LineItemDraft{
			{Name: "Rice", Quantity: "10", UnitPrice: "10"},
			{Name: "Flour", Quantity: "abc", UnitPrice: "25"},
		},
	})

	var fieldErrs ledger.FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "lineItems[1].quantity")
	assert.NotContains(t, fieldErrs, "lineItems[0].quantity")
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestCommit_DuplicateLineNames(t *testing.T) {
	svc, _, _ := newTransactionTestService(t)

	_, err := svc.Commit(context.Background(), "user-1", CommitRequest{
		Kind:             transaction.KindPurchase,
		CounterpartyName: "Acme Traders",
		LineItems: []ledger.LineItemDraft{
			{Name: "Rice", Quantity: "10", UnitPrice: "10"},
			{Name: " rice ", Quantity: "5", UnitPrice: "10"},
		},
	})

	var fieldErrs ledger.FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "lineItems[0].name")
	assert.Contains(t, fieldErrs, "lineItems[1].name")
}

func TestCommit_ProcessorErrorPassesThrough(t *testing.T) {
	svc, _, processor := newTransactionTestService(t)

	processor.On("Process", mock.Anything, mock.Anything).
		Return(ledger.FieldErrors{"cashPaid": "Cash cannot exceed the prior balance plus the total."})

	result, err := svc.Commit(context.Background(), "user-1", CommitRequest{
		Kind:             transaction.KindPurchase,
		CounterpartyName: "Acme Traders",
		LineItems: []ledger.LineItemDraft{
			{Name: "Rice", Quantity: "1", UnitPrice: "100"},
		},
		CashPaid: "900",
	})

	assert.Nil(t, result)
	var fieldErrs ledger.FieldErrors
	assert.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "cashPaid")
}

// -- ListTransactions tests --

func makeStorageTransactions(n int, createdAt time.Time) []*transaction.Transaction {
	rows := make([]*transaction.Transaction, n)
	for i := range rows {
		rows[i] = &transaction.Transaction{
			ID:               uuid.Must(uuid.NewV4()),
			UserID:           "user-1",
			Kind:             transaction.KindPurchase,
			CounterpartyID:   uuid.Must(uuid.NewV4()),
			CounterpartyName: "Acme Traders",
			LineItems: transaction.LineItems{
				{Name: "Rice", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)},
			},
			Total:           decimal.NewFromInt(100),
			CashPaid:        decimal.NewFromInt(40),
			OnAccount:       decimal.NewFromInt(60),
			TransactionDate: createdAt,
			CreatedAt:       createdAt,
		}
	}
	return rows
}

func TestListTransactions_NoResults(t *testing.T) {
	svc, reader, _ := newTransactionTestService(t)

	reader.On("List", mock.Anything, mock.Anything).
		Return([]*transaction.Transaction{}, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), "user-1", nil, nil, nil)

	assert.NoError(t, err)
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}

func TestListTransactions_SinglePage(t *testing.T) {
	svc, reader, _ := newTransactionTestService(t)

	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := makeStorageTransactions(2, now)

	reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.UserID == "user-1" && f.Limit == defaultTransactionLimit && f.Offset == 0 && f.MaxCreationTime == nil
	})).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), "user-1", nil, nil, nil)

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Nil(t, nextCursor)

	tx := txs[0]
	assert.Equal(t, rows[0].ID, tx.ID)
	assert.Equal(t, rows[0].CounterpartyName, tx.CounterpartyName)
	assert.Len(t, tx.LineItems, 1)
	assert.Equal(t, "Rice", tx.LineItems[0].Name)
	assert.True(t, rows[0].Total.Equal(tx.Total))
	assert.True(t, rows[0].OnAccount.Equal(tx.OnAccount))
}

func TestListTransactions_HasNextPage(t *testing.T) {
	svc, reader, _ := newTransactionTestService(t)

	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := makeStorageTransactions(defaultTransactionLimit+1, now)

	reader.On("List", mock.Anything, mock.Anything).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), "user-1", nil, nil, nil)

	assert.NoError(t, err)
	assert.Len(t, txs, defaultTransactionLimit, "truncated to default limit")

	assert.NotNil(t, nextCursor)
	assert.Equal(t, defaultTransactionLimit, nextCursor.Position)
	assert.Equal(t, defaultTransactionLimit, nextCursor.Limit)
	assert.Equal(t, now, nextCursor.MaxCreationTime, "derived from first row")
}

func TestListTransactions_WithCursor(t *testing.T) {
	svc, reader, _ := newTransactionTestService(t)

	cursorTime := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	rowTime := time.Date(2026, 6, 10, 8, 0, 0, 0, time.UTC)
	rows := makeStorageTransactions(3, rowTime) // limit=2, returns 3 → has next page

	reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Limit == 2 &&
			f.Offset == 20 &&
			f.MaxCreationTime != nil &&
			f.MaxCreationTime.Equal(cursorTime)
	})).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), "user-1", nil, nil, &TransactionCursor{
		Position:        20,
		Limit:           2,
		MaxCreationTime: cursorTime,
	})

	assert.NoError(t, err)
	assert.Len(t, txs, 2)

	assert.NotNil(t, nextCursor)
	assert.Equal(t, 22, nextCursor.Position)
	assert.Equal(t, 2, nextCursor.Limit)
	assert.Equal(t, cursorTime, nextCursor.MaxCreationTime, "echoed from cursor, not overridden by row data")
}

func TestListTransactions_KindFilterForwarded(t *testing.T) {
	svc, reader, _ := newTransactionTestService(t)

	kind := transaction.KindSale
	cpID := uuid.Must(uuid.NewV4())
	reader.On("List", mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Kind != nil && *f.Kind == transaction.KindSale &&
			f.CounterpartyID != nil && *f.CounterpartyID == cpID
	})).Return([]*transaction.Transaction{}, nil)

	_, _, err := svc.ListTransactions(context.Background(), "user-1", &kind, &cpID, nil)

	assert.NoError(t, err)
	reader.AssertExpectations(t)
}

func TestListTransactions_StorageError(t *testing.T) {
	svc, reader, _ := newTransactionTestService(t)

	reader.On("List", mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	txs, nextCursor, err := svc.ListTransactions(context.Background(), "user-1", nil, nil, nil)

	assert.Error(t, err)
	assert.Equal(t, "database unavailable", err.Error())
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}
