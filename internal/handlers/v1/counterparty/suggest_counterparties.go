package counterparty

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/service"
	storagecp "github.com/khata-labs/ledger-server/internal/storage/counterparty"
)

// SuggestCounterpartiesInput is the Huma input for counterparty autocomplete.
type SuggestCounterpartiesInput struct {
	Kind  string `query:"kind" required:"true" enum:"vendor,customer" doc:"vendor or customer"`
	Query string `query:"q" doc:"Name fragment typed so far"`
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	ID      string `json:"id" doc:"Counterparty UUID"`
	Name    string `json:"name" doc:"Display name"`
	Balance string `json:"balance" doc:"Outstanding decimal balance"`
}

// SuggestCounterpartiesResponseBody is the response body for counterparty
// autocomplete.
type SuggestCounterpartiesResponseBody struct {
	Suggestions []Suggestion `json:"suggestions" doc:"Matching counterparties in insertion order"`
}

// SuggestCounterpartiesOutput is the Huma output for counterparty autocomplete.
type SuggestCounterpartiesOutput struct {
	Body SuggestCounterpartiesResponseBody
}

// counterpartySuggester is the interface for counterparty autocomplete.
type counterpartySuggester interface {
	SuggestCounterparties(ctx context.Context, userID string, kind storagecp.Kind, query string) ([]service.Counterparty, error)
}

// SuggestCounterpartiesHandler handles GET /v1/counterparty/suggest.
type SuggestCounterpartiesHandler struct {
	CounterpartyService counterpartySuggester
}

// NewSuggestCounterpartiesHandler creates a new SuggestCounterpartiesHandler.
func NewSuggestCounterpartiesHandler(svc counterpartySuggester) *SuggestCounterpartiesHandler {
	return &SuggestCounterpartiesHandler{CounterpartyService: svc}
}

// Register registers the suggest counterparties endpoint with the Huma API.
func (h *SuggestCounterpartiesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "suggest-counterparties",
		Method:      http.MethodGet,
		Path:        "/v1/counterparty/suggest",
		Summary:     "Suggest counterparties",
		Description: "Returns counterparties whose name contains the query. An empty query returns no suggestions.",
		Tags:        []string{"Counterparties"},
	}, h.handle)
}

func (h *SuggestCounterpartiesHandler) handle(ctx context.Context, input *SuggestCounterpartiesInput) (*SuggestCounterpartiesOutput, error) {
	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	kind, err := service.ParseCounterpartyKind(input.Kind)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid kind", err)
	}

	matches, err := h.CounterpartyService.SuggestCounterparties(ctx, userID, kind, input.Query)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to suggest counterparties", err)
	}

	resp := SuggestCounterpartiesResponseBody{
		Suggestions: make([]Suggestion, len(matches)),
	}
	for i, cp := range matches {
		resp.Suggestions[i] = Suggestion{
			ID:      cp.ID.String(),
			Name:    cp.Name,
			Balance: cp.Balance.String(),
		}
	}

	return &SuggestCounterpartiesOutput{Body: resp}, nil
}
