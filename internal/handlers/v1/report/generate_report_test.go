package report

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/ledger"
	"github.com/khata-labs/ledger-server/internal/service"
	storagecp "github.com/khata-labs/ledger-server/internal/storage/counterparty"
	storagetx "github.com/khata-labs/ledger-server/internal/storage/transaction"
)

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) Generate(ctx context.Context, userID string, kind *storagetx.Kind, filter ledger.ReportFilter) ([]ledger.ReportRow, ledger.ReportStats, error) {
	args := m.Called(ctx, userID, kind, filter)
	var rows []ledger.ReportRow
	if v := args.Get(0); v != nil {
		rows = v.([]ledger.ReportRow)
	}
	return rows, args.Get(1).(ledger.ReportStats), args.Error(2)
}

func (m *mockReportService) Balances(ctx context.Context, userID string, kind *storagecp.Kind) ([]service.Counterparty, decimal.Decimal, error) {
	args := m.Called(ctx, userID, kind)
	var rows []service.Counterparty
	if v := args.Get(0); v != nil {
		rows = v.([]service.Counterparty)
	}
	return rows, args.Get(1).(decimal.Decimal), args.Error(2)
}

const userHeader = "X-User-ID: user-1"

func newReportTestAPI(t *testing.T, svc reportGenerator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(auth.NewMiddleware(api))
	NewGenerateReportHandler(svc).Register(api)
	return api
}

func TestParseGenerateReportInput_FullFilter(t *testing.T) {
	input := &GenerateReportInput{
		Body: GenerateReportBody{
			Kind:         "sale",
			Counterparty: "acme",
			Search:       "rice",
			From:         "2026-01-01",
			To:           "2026-01-31",
			MinTotal:     "100",
			MaxTotal:     "1000",
			Payment:      "cash",
		},
	}

	kind, filter, err := parseGenerateReportInput(input)
	assert.NoError(t, err)
	assert.NotNil(t, kind)
	assert.Equal(t, storagetx.KindSale, *kind)
	assert.Equal(t, "acme", filter.Counterparty)
	assert.Equal(t, "rice", filter.Search)
	assert.Equal(t, ledger.PaymentCash, filter.Payment)
	assert.NotNil(t, filter.From)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *filter.From)
	assert.NotNil(t, filter.To)
	assert.NotNil(t, filter.MinTotal)
	assert.True(t, filter.MinTotal.Equal(decimal.NewFromInt(100)))
	assert.NotNil(t, filter.MaxTotal)
}

func TestParseGenerateReportInput_DefaultsToAllPayments(t *testing.T) {
	kind, filter, err := parseGenerateReportInput(&GenerateReportInput{})
	assert.NoError(t, err)
	assert.Nil(t, kind)
	assert.Equal(t, ledger.PaymentAll, filter.Payment)
	assert.Nil(t, filter.From)
	assert.Nil(t, filter.MinTotal)
}

func TestHTTP_GenerateReport_Success(t *testing.T) {
	mockSvc := new(mockReportService)
	mockSvc.On("Generate", mock.Anything, "user-1", (*storagetx.Kind)(nil), mock.MatchedBy(func(f ledger.ReportFilter) bool {
		return f.Payment == ledger.PaymentCash
	})).Return(
		[]ledger.ReportRow{
			{
				ID:               "tx-1",
				CounterpartyName: "Acme Traders",
				ItemNames:        []string{"Rice"},
				Total:            decimal.NewFromInt(300),
				CashPaid:         decimal.NewFromInt(300),
				OnAccount:        decimal.Zero,
				Date:             time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			},
		},
		ledger.ReportStats{
			Count:        1,
			TotalSum:     decimal.NewFromInt(300),
			CashSum:      decimal.NewFromInt(300),
			OnAccountSum: decimal.Zero,
			AverageTotal: decimal.NewFromInt(300),
		},
		nil,
	)

	resp := newReportTestAPI(t, mockSvc).Post("/v1/report", userHeader, GenerateReportBody{Payment: "cash"})

	assert.Equal(t, http.StatusOK, resp.Code)
	var body GenerateReportResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Rows, 1)
	assert.Equal(t, "Acme Traders", body.Rows[0].CounterpartyName)
	assert.Equal(t, "300", body.Rows[0].Total)
	assert.Equal(t, 1, body.Stats.Count)
	assert.Equal(t, "300", body.Stats.AverageTotal)
}

func TestHTTP_GenerateReport_BadDate(t *testing.T) {
	mockSvc := new(mockReportService)

	// Huma's format:"date" schema validation rejects this before the handler
	// runs.
	resp := newReportTestAPI(t, mockSvc).Post("/v1/report", userHeader, GenerateReportBody{From: "January 1"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_Balances_Success(t *testing.T) {
	mockSvc := new(mockReportService)
	mockSvc.On("Balances", mock.Anything, "user-1", mock.MatchedBy(func(kind *storagecp.Kind) bool {
		return kind != nil && *kind == storagecp.KindCustomer
	})).Return([]service.Counterparty{
		{Kind: storagecp.KindCustomer, Name: "Acme Traders", Balance: decimal.RequireFromString("650.50")},
	}, decimal.RequireFromString("650.50"), nil)

	_, api := humatest.New(t)
	api.UseMiddleware(auth.NewMiddleware(api))
	NewBalancesHandler(mockSvc).Register(api)

	resp := api.Get("/v1/report/balances?kind=customer", userHeader)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body BalancesResponseBody
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Balances, 1)
	assert.Equal(t, "customer", body.Balances[0].Kind)
	assert.Equal(t, "650.50", body.Total)
}
