package transaction

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/ledger"
	"github.com/khata-labs/ledger-server/internal/service"
	storagetx "github.com/khata-labs/ledger-server/internal/storage/transaction"
)

func newListTestAPI(t *testing.T, svc transactionLister) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(auth.NewMiddleware(api))
	NewListTransactionsHandler(svc).Register(api)
	return api
}

func makeServiceTransactions(n int, createdAt time.Time) []service.Transaction {
	txs := make([]service.Transaction, n)
	for i := range txs {
		txs[i] = service.Transaction{
			ID:               uuid.Must(uuid.NewV4()),
			Kind:             storagetx.KindSale,
			CounterpartyID:   uuid.Must(uuid.NewV4()),
			CounterpartyName: "Acme Traders",
			LineItems: []ledger.LineItem{
				{Name: "Rice", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)},
			},
			Total:           decimal.NewFromInt(100),
			CashPaid:        decimal.NewFromInt(100),
			OnAccount:       decimal.Zero,
			TransactionDate: createdAt,
			CreatedAt:       createdAt,
		}
	}
	return txs
}

func TestHTTP_ListTransactions_FirstPage(t *testing.T) {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	txs := makeServiceTransactions(2, now)
	next := &service.TransactionCursor{Position: 20, Limit: 20, MaxCreationTime: now}

	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, "user-1", (*storagetx.Kind)(nil), (*uuid.UUID)(nil), (*service.TransactionCursor)(nil)).
		Return(txs, next, nil)

	resp := newListTestAPI(t, mockSvc).Post("/v1/transaction/list", userHeader, ListTransactionsBody{})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ListTransactionsResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Transactions, 2)
	assert.Equal(t, "sale", body.Transactions[0].Kind)
	assert.Equal(t, "Acme Traders", body.Transactions[0].CounterpartyName)
	assert.Equal(t, "100", body.Transactions[0].Total)
	assert.NotNil(t, body.NextCursor)
	assert.Equal(t, 20, body.NextCursor.Position)
	assert.Equal(t, now.Format(time.RFC3339), body.NextCursor.MaxCreationTime)
}

func TestHTTP_ListTransactions_WithCursorAndFilters(t *testing.T) {
	cursorTime := time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC)
	cpID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockTransactionService)
	mockSvc.On("ListTransactions", mock.Anything, "user-1",
		mock.MatchedBy(func(kind *storagetx.Kind) bool {
			return kind != nil && *kind == storagetx.KindPurchase
		}),
		mock.MatchedBy(func(id *uuid.UUID) bool {
			return id != nil && *id == cpID
		}),
		mock.MatchedBy(func(cursor *service.TransactionCursor) bool {
			return cursor != nil && cursor.Position == 20 && cursor.Limit == 10 &&
				cursor.MaxCreationTime.Equal(cursorTime)
		})).
		Return(nil, nil, nil)

	resp := newListTestAPI(t, mockSvc).Post("/v1/transaction/list", userHeader, ListTransactionsBody{
		Kind:           "purchase",
		CounterpartyID: cpID.String(),
		Cursor: &ListTransactionsCursor{
			Position:        20,
			Limit:           10,
			MaxCreationTime: cursorTime.Format(time.RFC3339),
		},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_ListTransactions_BadCursorTime(t *testing.T) {
	mockSvc := new(mockTransactionService)

	// Huma's format:"date-time" schema validation rejects this before the
	// handler runs.
	resp := newListTestAPI(t, mockSvc).Post("/v1/transaction/list", userHeader, ListTransactionsBody{
		Cursor: &ListTransactionsCursor{
			Position:        0,
			Limit:           10,
			MaxCreationTime: "yesterday",
		},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "ListTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
