package item

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/khata-labs/ledger-server/internal/ledger"
)

// CreateItemBody is the request body for creating a catalog entry.
type CreateItemBody struct {
	Name            string `json:"name" required:"true" doc:"Item name"`
	PurchasingPrice string `json:"purchasingPrice" required:"true" doc:"Decimal purchasing price, must be positive"`
	SalesPrice      string `json:"salesPrice" required:"true" doc:"Decimal sales price, must be positive"`
	Quantity        string `json:"quantity" required:"true" doc:"Opening stock, a non-negative whole number"`
}

// CreateItemInput is the Huma input for creating a catalog entry.
type CreateItemInput struct {
	Body CreateItemBody
}

// CreateItemResponse is the response body for creating a catalog entry.
type CreateItemResponse struct {
	ID string `json:"id" doc:"Item UUID"`
}

// CreateItemOutput is the Huma output for creating a catalog entry.
type CreateItemOutput struct {
	Status int
	Body   CreateItemResponse
}

// itemCreator is the interface for creating catalog entries.
type itemCreator interface {
	CreateItem(ctx context.Context, userID string, draft ledger.ItemDraft) (uuid.UUID, error)
}

// CreateItemHandler handles POST /v1/item.
type CreateItemHandler struct {
	ItemService itemCreator
}

// NewCreateItemHandler creates a new CreateItemHandler.
func NewCreateItemHandler(svc itemCreator) *CreateItemHandler {
	return &CreateItemHandler{ItemService: svc}
}

// Register registers the create item endpoint with the Huma API.
func (h *CreateItemHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-item",
		Method:      http.MethodPost,
		Path:        "/v1/item",
		Summary:     "Create item",
		Description: "Creates a new item catalog entry.",
		Tags:        []string{"Items"},
	}, h.handle)
}

func (h *CreateItemHandler) handle(ctx context.Context, input *CreateItemInput) (*CreateItemOutput, error) {
	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	id, err := h.ItemService.CreateItem(ctx, userID, ledger.ItemDraft{
		Name:            input.Body.Name,
		PurchasingPrice: input.Body.PurchasingPrice,
		SalesPrice:      input.Body.SalesPrice,
		Quantity:        input.Body.Quantity,
	})
	if err != nil {
		return nil, apierror.Map(err, "failed to create item")
	}

	return &CreateItemOutput{
		Status: http.StatusCreated,
		Body:   CreateItemResponse{ID: id.String()},
	}, nil
}
