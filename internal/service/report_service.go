package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/khata-labs/ledger-server/internal/ledger"
	"github.com/khata-labs/ledger-server/internal/storage"
	"github.com/khata-labs/ledger-server/internal/storage/counterparty"
	"github.com/khata-labs/ledger-server/internal/storage/transaction"
)

// ReportService builds filtered transaction reports and balance summaries.
type ReportService struct {
	storage *storage.Storage
}

// NewReportService creates a new ReportService.
func NewReportService(store *storage.Storage) *ReportService {
	return &ReportService{storage: store}
}

// Generate loads the user's transactions of the kind, applies the filter and
// returns the surviving rows newest first along with their statistics.
func (s *ReportService) Generate(ctx context.Context, userID string, kind *transaction.Kind, filter ledger.ReportFilter) ([]ledger.ReportRow, ledger.ReportStats, error) {
	rows, err := s.storage.Transactions.List(ctx, &transaction.TransactionFilter{
		UserID: userID,
		Kind:   kind,
	})
	if err != nil {
		return nil, ledger.ReportStats{}, err
	}

	reportRows := make([]ledger.ReportRow, len(rows))
	for i, row := range rows {
		reportRows[i] = reportRowFromStorage(row)
	}

	kept, stats := ledger.Aggregate(reportRows, filter)
	return kept, stats, nil
}

// Balances returns every counterparty of the kind with the sum of their
// outstanding balances. A nil kind covers vendors and customers alike.
func (s *ReportService) Balances(ctx context.Context, userID string, kind *counterparty.Kind) ([]Counterparty, decimal.Decimal, error) {
	rows, err := s.storage.Counterparties.List(ctx, &counterparty.CounterpartyFilter{
		UserID: userID,
		Kind:   kind,
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	converted := make([]Counterparty, len(rows))
	for i, row := range rows {
		converted[i] = counterpartyFromStorage(row)
		total = total.Add(row.Balance)
	}

	return converted, total, nil
}

func reportRowFromStorage(row *transaction.Transaction) ledger.ReportRow {
	names := make([]string, len(row.LineItems))
	for i, li := range row.LineItems {
		names[i] = li.Name
	}

	return ledger.ReportRow{
		ID:               row.ID.String(),
		CounterpartyName: row.CounterpartyName,
		ItemNames:        names,
		Total:            row.Total,
		CashPaid:         row.CashPaid,
		OnAccount:        row.OnAccount,
		Date:             row.TransactionDate,
	}
}
