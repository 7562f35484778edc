package report

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/ledger"
	"github.com/khata-labs/ledger-server/internal/logging"
	"github.com/khata-labs/ledger-server/internal/service"
	storagetx "github.com/khata-labs/ledger-server/internal/storage/transaction"
)

// GenerateReportBody is the request body for generating a report.
type GenerateReportBody struct {
	Kind         string `json:"kind,omitempty" enum:",purchase,sale" doc:"Restrict to one kind, empty for both"`
	Counterparty string `json:"counterparty,omitempty" doc:"Counterparty name fragment"`
	Search       string `json:"search,omitempty" doc:"Fragment matched against counterparty and item names"`
	From         string `json:"from,omitempty" format:"date" doc:"First calendar day included, YYYY-MM-DD"`
	To           string `json:"to,omitempty" format:"date" doc:"Last calendar day included, YYYY-MM-DD"`
	MinTotal     string `json:"minTotal,omitempty" doc:"Decimal lower bound on the row total"`
	MaxTotal     string `json:"maxTotal,omitempty" doc:"Decimal upper bound on the row total"`
	Payment      string `json:"payment,omitempty" enum:",all,cash,account" doc:"Payment split filter, defaults to all"`
}

// GenerateReportInput is the Huma input for generating a report.
type GenerateReportInput struct {
	Body GenerateReportBody
}

// ReportRow is the API model for one report line.
type ReportRow struct {
	ID               string   `json:"id" doc:"Transaction UUID"`
	CounterpartyName string   `json:"counterpartyName" doc:"Counterparty name at commit time"`
	ItemNames        []string `json:"itemNames" doc:"Names of the line items"`
	Total            string   `json:"total" doc:"Decimal row total"`
	CashPaid         string   `json:"cashPaid" doc:"Decimal cash settled"`
	OnAccount        string   `json:"onAccount" doc:"Decimal amount carried on the ledger"`
	Date             string   `json:"date,omitempty" doc:"RFC3339 transaction date, absent when unknown"`
}

// ReportStats is the API model for the aggregate block under the rows.
type ReportStats struct {
	Count        int    `json:"count" doc:"Number of rows that passed the filter"`
	TotalSum     string `json:"totalSum" doc:"Decimal sum of row totals"`
	CashSum      string `json:"cashSum" doc:"Decimal sum of cash paid"`
	OnAccountSum string `json:"onAccountSum" doc:"Decimal sum of on-account amounts"`
	AverageTotal string `json:"averageTotal" doc:"Decimal average row total, rounded to 2 places"`
}

// GenerateReportResponseBody is the response body for generating a report.
type GenerateReportResponseBody struct {
	Rows  []ReportRow `json:"rows" doc:"Rows that passed every active filter, newest first"`
	Stats ReportStats `json:"stats" doc:"Aggregates over the returned rows"`
}

// GenerateReportOutput is the Huma output for generating a report.
type GenerateReportOutput struct {
	Body GenerateReportResponseBody
}

// reportGenerator is the interface for generating reports.
type reportGenerator interface {
	Generate(ctx context.Context, userID string, kind *storagetx.Kind, filter ledger.ReportFilter) ([]ledger.ReportRow, ledger.ReportStats, error)
}

// GenerateReportHandler handles POST /v1/report.
type GenerateReportHandler struct {
	ReportService reportGenerator
}

// NewGenerateReportHandler creates a new GenerateReportHandler.
func NewGenerateReportHandler(svc reportGenerator) *GenerateReportHandler {
	return &GenerateReportHandler{ReportService: svc}
}

// Register registers the generate report endpoint with the Huma API.
func (h *GenerateReportHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "generate-report",
		Method:      http.MethodPost,
		Path:        "/v1/report",
		Summary:     "Generate report",
		Description: "Filters the user's transactions and returns the surviving rows with count, sum and average statistics.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

// parseGenerateReportInput parses and validates the API input. Date bounds are
// calendar days; each covers its full day.
func parseGenerateReportInput(input *GenerateReportInput) (kind *storagetx.Kind, filter ledger.ReportFilter, err error) {
	if input.Body.Kind != "" {
		parsed, parseErr := service.ParseTransactionKind(input.Body.Kind)
		if parseErr != nil {
			return nil, filter, huma.NewError(http.StatusBadRequest, "invalid kind", parseErr)
		}
		kind = &parsed
	}

	filter.Counterparty = input.Body.Counterparty
	filter.Search = input.Body.Search
	filter.Payment = ledger.PaymentAll
	if input.Body.Payment != "" {
		filter.Payment = ledger.PaymentType(input.Body.Payment)
	}

	if input.Body.From != "" {
		from, parseErr := time.Parse("2006-01-02", input.Body.From)
		if parseErr != nil {
			return nil, filter, huma.NewError(http.StatusBadRequest, "invalid from date", parseErr)
		}
		filter.From = &from
	}
	if input.Body.To != "" {
		to, parseErr := time.Parse("2006-01-02", input.Body.To)
		if parseErr != nil {
			return nil, filter, huma.NewError(http.StatusBadRequest, "invalid to date", parseErr)
		}
		filter.To = &to
	}

	if input.Body.MinTotal != "" {
		minTotal, parseErr := decimal.NewFromString(input.Body.MinTotal)
		if parseErr != nil {
			return nil, filter, huma.NewError(http.StatusBadRequest, "invalid minTotal", parseErr)
		}
		filter.MinTotal = &minTotal
	}
	if input.Body.MaxTotal != "" {
		maxTotal, parseErr := decimal.NewFromString(input.Body.MaxTotal)
		if parseErr != nil {
			return nil, filter, huma.NewError(http.StatusBadRequest, "invalid maxTotal", parseErr)
		}
		filter.MaxTotal = &maxTotal
	}

	return kind, filter, nil
}

func (h *GenerateReportHandler) handle(ctx context.Context, input *GenerateReportInput) (*GenerateReportOutput, error) {
	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	kind, filter, err := parseGenerateReportInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("generateReportMs")
	}
	rows, stats, err := h.ReportService.Generate(ctx, userID, kind, filter)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to generate report", err)
	}

	if logData != nil {
		logData.AddData("reportRowCount", len(rows))
	}

	resp := GenerateReportResponseBody{
		Rows: make([]ReportRow, len(rows)),
		Stats: ReportStats{
			Count:        stats.Count,
			TotalSum:     stats.TotalSum.String(),
			CashSum:      stats.CashSum.String(),
			OnAccountSum: stats.OnAccountSum.String(),
			AverageTotal: stats.AverageTotal.String(),
		},
	}
	for i, row := range rows {
		apiRow := ReportRow{
			ID:               row.ID,
			CounterpartyName: row.CounterpartyName,
			ItemNames:        row.ItemNames,
			Total:            row.Total.String(),
			CashPaid:         row.CashPaid.String(),
			OnAccount:        row.OnAccount.String(),
		}
		if !row.Date.IsZero() {
			apiRow.Date = row.Date.Format(time.RFC3339)
		}
		resp.Rows[i] = apiRow
	}

	return &GenerateReportOutput{Body: resp}, nil
}
