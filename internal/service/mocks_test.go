package service

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/khata-labs/ledger-server/internal/operator/actions"
	"github.com/khata-labs/ledger-server/internal/storage/counterparty"
	"github.com/khata-labs/ledger-server/internal/storage/item"
	"github.com/khata-labs/ledger-server/internal/storage/transaction"
)

type mockCounterpartyReader struct {
	mock.Mock
}

func (m *mockCounterpartyReader) List(ctx context.Context, filter *counterparty.CounterpartyFilter) ([]*counterparty.Counterparty, error) {
	args := m.Called(ctx, filter)
	var rows []*counterparty.Counterparty
	if v := args.Get(0); v != nil {
		rows = v.([]*counterparty.Counterparty)
	}
	return rows, args.Error(1)
}

func (m *mockCounterpartyReader) FindByID(ctx context.Context, userID string, id uuid.UUID) (*counterparty.Counterparty, error) {
	args := m.Called(ctx, userID, id)
	var row *counterparty.Counterparty
	if v := args.Get(0); v != nil {
		row = v.(*counterparty.Counterparty)
	}
	return row, args.Error(1)
}

type mockItemReader struct {
	mock.Mock
}

func (m *mockItemReader) List(ctx context.Context, filter *item.ItemFilter) ([]*item.Item, error) {
	args := m.Called(ctx, filter)
	var rows []*item.Item
	if v := args.Get(0); v != nil {
		rows = v.([]*item.Item)
	}
	return rows, args.Error(1)
}

func (m *mockItemReader) FindByID(ctx context.Context, userID string, id uuid.UUID) (*item.Item, error) {
	args := m.Called(ctx, userID, id)
	var row *item.Item
	if v := args.Get(0); v != nil {
		row = v.(*item.Item)
	}
	return row, args.Error(1)
}

type mockTransactionReader struct {
	mock.Mock
}

func (m *mockTransactionReader) List(ctx context.Context, filter *transaction.TransactionFilter) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, filter)
	var rows []*transaction.Transaction
	if v := args.Get(0); v != nil {
		rows = v.([]*transaction.Transaction)
	}
	return rows, args.Error(1)
}

func (m *mockTransactionReader) FindByID(ctx context.Context, userID string, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, userID, id)
	var row *transaction.Transaction
	if v := args.Get(0); v != nil {
		row = v.(*transaction.Transaction)
	}
	return row, args.Error(1)
}

// mockProcessor stands in for the operator. perform runs before the
// expectation so a test can fill in an action's output fields the way a real
// Perform would.
type mockProcessor struct {
	mock.Mock
	perform func(action actions.IAction)
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	if m.perform != nil {
		m.perform(action)
	}
	args := m.Called(ctx, action)
	return args.Error(0)
}
