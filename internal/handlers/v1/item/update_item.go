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

// UpdateItemBody is the request body for editing a catalog entry.
type UpdateItemBody struct {
	Name            string `json:"name" required:"true" doc:"Item name"`
	PurchasingPrice string `json:"purchasingPrice" required:"true" doc:"Decimal purchasing price, must be positive"`
	SalesPrice      string `json:"salesPrice" required:"true" doc:"Decimal sales price, must be positive"`
	Quantity        string `json:"quantity" required:"true" doc:"Stock on hand, a non-negative whole number"`
}

// UpdateItemInput is the Huma input for editing a catalog entry.
type UpdateItemInput struct {
	ID   string `path:"id" format:"uuid" doc:"Item UUID"`
	Body UpdateItemBody
}

// UpdateItemOutput is the Huma output for editing a catalog entry.
type UpdateItemOutput struct {
	Status int
}

// itemUpdater is the interface for editing catalog entries.
type itemUpdater interface {
	UpdateItem(ctx context.Context, userID string, id uuid.UUID, draft ledger.ItemDraft) error
}

// UpdateItemHandler handles PUT /v1/item/{id}.
type UpdateItemHandler struct {
	ItemService itemUpdater
}

// NewUpdateItemHandler creates a new UpdateItemHandler.
func NewUpdateItemHandler(svc itemUpdater) *UpdateItemHandler {
	return &UpdateItemHandler{ItemService: svc}
}

// Register registers the update item endpoint with the Huma API.
func (h *UpdateItemHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-item",
		Method:      http.MethodPut,
		Path:        "/v1/item/{id}",
		Summary:     "Update item",
		Description: "Edits a catalog entry's name, prices and stock.",
		Tags:        []string{"Items"},
	}, h.handle)
}

func (h *UpdateItemHandler) handle(ctx context.Context, input *UpdateItemInput) (*UpdateItemOutput, error) {
	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	err = h.ItemService.UpdateItem(ctx, userID, id, ledger.ItemDraft{
		Name:            input.Body.Name,
		PurchasingPrice: input.Body.PurchasingPrice,
		SalesPrice:      input.Body.SalesPrice,
		Quantity:        input.Body.Quantity,
	})
	if err != nil {
		return nil, apierror.Map(err, "failed to update item")
	}

	return &UpdateItemOutput{Status: http.StatusNoContent}, nil
}
