package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType selects which payment split a report includes.
type PaymentType string

const (
	// PaymentAll applies no payment-type filter.
	PaymentAll PaymentType = "all"
	// PaymentCash keeps rows where cash changed hands.
	PaymentCash PaymentType = "cash"
	// PaymentOnAccount keeps rows that carried credit forward.
	PaymentOnAccount PaymentType = "account"
)

// ReportRow is the report view of one committed transaction.
type ReportRow struct {
	ID               string
	CounterpartyName string
	ItemNames        []string
	Total            decimal.Decimal
	CashPaid         decimal.Decimal
	OnAccount        decimal.Decimal
	Date             time.Time
}

// ReportFilter is the filter specification for a report run. Nil bounds are
// inactive. Date bounds are inclusive of the full calendar day in the bound's
// own location.
type ReportFilter struct {
	Counterparty string
	Search       string
	From         *time.Time
	To           *time.Time
	MinTotal     *decimal.Decimal
	MaxTotal     *decimal.Decimal
	Payment      PaymentType
}

// ReportStats aggregates the rows that passed the filter.
type ReportStats struct {
	Count        int
	TotalSum     decimal.Decimal
	CashSum      decimal.Decimal
	OnAccountSum decimal.Decimal
	AverageTotal decimal.Decimal
}

// Match reports whether a row satisfies every active predicate.
func (f ReportFilter) Match(row ReportRow) bool {
	if cp := strings.ToLower(strings.TrimSpace(f.Counterparty)); cp != "" {
		if !strings.Contains(strings.ToLower(row.CounterpartyName), cp) {
			return false
		}
	}

	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		counterparty := strings.ToLower(row.CounterpartyName)
		items := strings.ToLower(strings.Join(row.ItemNames, " "))
		if !strings.Contains(counterparty, q) && !strings.Contains(items, q) {
			return false
		}
	}

	// A row without a usable date is excluded by any active date bound but
	// passes when no date filter is set.
	if f.From != nil || f.To != nil {
		if row.Date.IsZero() {
			return false
		}
		if f.From != nil && row.Date.Before(dayStart(*f.From)) {
			return false
		}
		if f.To != nil && !row.Date.Before(dayStart(*f.To).AddDate(0, 0, 1)) {
			return false
		}
	}

	if f.MinTotal != nil && row.Total.LessThan(*f.MinTotal) {
		return false
	}
	if f.MaxTotal != nil && row.Total.GreaterThan(*f.MaxTotal) {
		return false
	}

	switch f.Payment {
	case PaymentCash:
		if !row.CashPaid.IsPositive() {
			return false
		}
	case PaymentOnAccount:
		if !row.OnAccount.IsPositive() {
			return false
		}
	}

	return true
}

// Aggregate filters the rows and computes count/sum/average statistics over
// the survivors, preserving input order.
func Aggregate(rows []ReportRow, filter ReportFilter) ([]ReportRow, ReportStats) {
	stats := ReportStats{
		TotalSum:     decimal.Zero,
		CashSum:      decimal.Zero,
		OnAccountSum: decimal.Zero,
		AverageTotal: decimal.Zero,
	}

	var kept []ReportRow
	for _, row := range rows {
		if !filter.Match(row) {
			continue
		}
		kept = append(kept, row)
		stats.Count++
		stats.TotalSum = stats.TotalSum.Add(row.Total)
		stats.CashSum = stats.CashSum.Add(row.CashPaid)
		stats.OnAccountSum = stats.OnAccountSum.Add(row.OnAccount)
	}

	if stats.Count > 0 {
		stats.AverageTotal = stats.TotalSum.DivRound(decimal.NewFromInt(int64(stats.Count)), 2)
	}

	return kept, stats
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
