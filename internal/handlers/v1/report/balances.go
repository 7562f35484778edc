package report

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/service"
	storagecp "github.com/khata-labs/ledger-server/internal/storage/counterparty"
)

// BalancesInput is the Huma input for the balance summary.
type BalancesInput struct {
	Kind string `query:"kind" enum:",vendor,customer" doc:"Restrict to one kind, empty for both"`
}

// BalanceRow is one counterparty with its outstanding balance.
type BalanceRow struct {
	ID      string `json:"id" doc:"Counterparty UUID"`
	Kind    string `json:"kind" doc:"vendor or customer"`
	Name    string `json:"name" doc:"Display name"`
	Balance string `json:"balance" doc:"Outstanding decimal balance"`
}

// BalancesResponseBody is the response body for the balance summary.
type BalancesResponseBody struct {
	Balances []BalanceRow `json:"balances" doc:"Counterparties with their balances"`
	Total    string       `json:"total" doc:"Decimal sum of the listed balances"`
}

// BalancesOutput is the Huma output for the balance summary.
type BalancesOutput struct {
	Body BalancesResponseBody
}

// balanceReporter is the interface for the balance summary.
type balanceReporter interface {
	Balances(ctx context.Context, userID string, kind *storagecp.Kind) ([]service.Counterparty, decimal.Decimal, error)
}

// BalancesHandler handles GET /v1/report/balances.
type BalancesHandler struct {
	ReportService balanceReporter
}

// NewBalancesHandler creates a new BalancesHandler.
func NewBalancesHandler(svc balanceReporter) *BalancesHandler {
	return &BalancesHandler{ReportService: svc}
}

// Register registers the balances endpoint with the Huma API.
func (h *BalancesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-balances",
		Method:      http.MethodGet,
		Path:        "/v1/report/balances",
		Summary:     "Balance summary",
		Description: "Returns every counterparty with its outstanding balance and the overall total.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *BalancesHandler) handle(ctx context.Context, input *BalancesInput) (*BalancesOutput, error) {
	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	var kind *storagecp.Kind
	if input.Kind != "" {
		parsed, parseErr := service.ParseCounterpartyKind(input.Kind)
		if parseErr != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid kind", parseErr)
		}
		kind = &parsed
	}

	rows, total, err := h.ReportService.Balances(ctx, userID, kind)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to report balances", err)
	}

	resp := BalancesResponseBody{
		Balances: make([]BalanceRow, len(rows)),
		Total:    total.String(),
	}
	for i, cp := range rows {
		resp.Balances[i] = BalanceRow{
			ID:      cp.ID.String(),
			Kind:    service.CounterpartyKindString(cp.Kind),
			Name:    cp.Name,
			Balance: cp.Balance.String(),
		}
	}

	return &BalancesOutput{Body: resp}, nil
}
