package item

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/service"
)

// SuggestItemsInput is the Huma input for item autocomplete.
type SuggestItemsInput struct {
	Query string `query:"q" doc:"Name fragment typed so far"`
}

// Suggestion is one autocomplete candidate with the prices a selected
// suggestion prefills.
type Suggestion struct {
	ID              string `json:"id" doc:"Item UUID"`
	Name            string `json:"name" doc:"Item name"`
	PurchasingPrice string `json:"purchasingPrice" doc:"Decimal purchasing price"`
	SalesPrice      string `json:"salesPrice" doc:"Decimal sales price"`
}

// SuggestItemsResponseBody is the response body for item autocomplete.
type SuggestItemsResponseBody struct {
	Suggestions []Suggestion `json:"suggestions" doc:"Matching catalog entries in insertion order"`
}

// SuggestItemsOutput is the Huma output for item autocomplete.
type SuggestItemsOutput struct {
	Body SuggestItemsResponseBody
}

// itemSuggester is the interface for item autocomplete.
type itemSuggester interface {
	SuggestItems(ctx context.Context, userID string, query string) ([]service.Item, error)
}

// SuggestItemsHandler handles GET /v1/item/suggest.
type SuggestItemsHandler struct {
	ItemService itemSuggester
}

// NewSuggestItemsHandler creates a new SuggestItemsHandler.
func NewSuggestItemsHandler(svc itemSuggester) *SuggestItemsHandler {
	return &SuggestItemsHandler{ItemService: svc}
}

// Register registers the suggest items endpoint with the Huma API.
func (h *SuggestItemsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "suggest-items",
		Method:      http.MethodGet,
		Path:        "/v1/item/suggest",
		Summary:     "Suggest items",
		Description: "Returns catalog entries whose name contains the query. An empty query returns no suggestions.",
		Tags:        []string{"Items"},
	}, h.handle)
}

func (h *SuggestItemsHandler) handle(ctx context.Context, input *SuggestItemsInput) (*SuggestItemsOutput, error) {
	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := h.ItemService.SuggestItems(ctx, userID, input.Query)
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to suggest items", err)
	}

	resp := SuggestItemsResponseBody{
		Suggestions: make([]Suggestion, len(matches)),
	}
	for i, it := range matches {
		resp.Suggestions[i] = Suggestion{
			ID:              it.ID.String(),
			Name:            it.Name,
			PurchasingPrice: it.PurchasingPrice.String(),
			SalesPrice:      it.SalesPrice.String(),
		}
	}

	return &SuggestItemsOutput{Body: resp}, nil
}
