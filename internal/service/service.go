package service

import (
	"github.com/khata-labs/ledger-server/internal/operator"
	"github.com/khata-labs/ledger-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Counterparty *CounterpartyService
	Item         *ItemService
	Transaction  *TransactionService
	Report       *ReportService
}

// NewService creates a new Service over the given storage and operator.
func NewService(store *storage.Storage, processor operator.Processor) *Service {
	return &Service{
		Counterparty: NewCounterpartyService(store, processor),
		Item:         NewItemService(store, processor),
		Transaction:  NewTransactionService(store, processor),
		Report:       NewReportService(store),
	}
}
