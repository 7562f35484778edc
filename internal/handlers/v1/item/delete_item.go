package item

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/handlers/v1/apierror"
)

// DeleteItemInput is the Huma input for deleting a catalog entry.
type DeleteItemInput struct {
	ID string `path:"id" format:"uuid" doc:"Item UUID"`
}

// DeleteItemOutput is the Huma output for deleting a catalog entry.
type DeleteItemOutput struct {
	Status int
}

// itemDeleter is the interface for deleting catalog entries.
type itemDeleter interface {
	DeleteItem(ctx context.Context, userID string, id uuid.UUID) error
}

// DeleteItemHandler handles DELETE /v1/item/{id}.
type DeleteItemHandler struct {
	ItemService itemDeleter
}

// NewDeleteItemHandler creates a new DeleteItemHandler.
func NewDeleteItemHandler(svc itemDeleter) *DeleteItemHandler {
	return &DeleteItemHandler{ItemService: svc}
}

// Register registers the delete item endpoint with the Huma API.
func (h *DeleteItemHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-item",
		Method:      http.MethodDelete,
		Path:        "/v1/item/{id}",
		Summary:     "Delete item",
		Description: "Removes a catalog entry.",
		Tags:        []string{"Items"},
	}, h.handle)
}

func (h *DeleteItemHandler) handle(ctx context.Context, input *DeleteItemInput) (*DeleteItemOutput, error) {
	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	if err := h.ItemService.DeleteItem(ctx, userID, id); err != nil {
		return nil, apierror.Map(err, "failed to delete item")
	}

	return &DeleteItemOutput{Status: http.StatusNoContent}, nil
}
