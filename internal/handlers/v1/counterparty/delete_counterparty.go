package counterparty

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/handlers/v1/apierror"
)

// DeleteCounterpartyInput is the Huma input for deleting a counterparty.
type DeleteCounterpartyInput struct {
	ID string `path:"id" format:"uuid" doc:"Counterparty UUID"`
}

// DeleteCounterpartyOutput is the Huma output for deleting a counterparty.
type DeleteCounterpartyOutput struct {
	Status int
}

// counterpartyDeleter is the interface for deleting counterparties.
type counterpartyDeleter interface {
	DeleteCounterparty(ctx context.Context, userID string, id uuid.UUID) error
}

// DeleteCounterpartyHandler handles DELETE /v1/counterparty/{id}.
type DeleteCounterpartyHandler struct {
	CounterpartyService counterpartyDeleter
}

// NewDeleteCounterpartyHandler creates a new DeleteCounterpartyHandler.
func NewDeleteCounterpartyHandler(svc counterpartyDeleter) *DeleteCounterpartyHandler {
	return &DeleteCounterpartyHandler{CounterpartyService: svc}
}

// Register registers the delete counterparty endpoint with the Huma API.
func (h *DeleteCounterpartyHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-counterparty",
		Method:      http.MethodDelete,
		Path:        "/v1/counterparty/{id}",
		Summary:     "Delete counterparty",
		Description: "Removes a counterparty.",
		Tags:        []string{"Counterparties"},
	}, h.handle)
}

func (h *DeleteCounterpartyHandler) handle(ctx context.Context, input *DeleteCounterpartyInput) (*DeleteCounterpartyOutput, error) {
	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}

	if err := h.CounterpartyService.DeleteCounterparty(ctx, userID, id); err != nil {
		return nil, apierror.Map(err, "failed to delete counterparty")
	}

	return &DeleteCounterpartyOutput{Status: http.StatusNoContent}, nil
}
