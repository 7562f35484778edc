package counterparty

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/khata-labs/ledger-server/internal/ledger"
	"github.com/khata-labs/ledger-server/internal/service"
	storagecp "github.com/khata-labs/ledger-server/internal/storage/counterparty"
)

// UpdateCounterpartyBody is the request body for editing a counterparty.
type UpdateCounterpartyBody struct {
	Kind           string   `json:"kind" required:"true" enum:"vendor,customer" doc:"vendor or customer"`
	Name           string   `json:"name" required:"true" doc:"Display name"`
	ContactNumbers []string `json:"contactNumbers" doc:"Contact numbers, at least one non-blank"`
	Balance        string   `json:"balance" required:"true" doc:"Decimal balance"`
}

// UpdateCounterpartyInput is the Huma input for editing a counterparty.
type UpdateCounterpartyInput struct {
	ID   string `path:"id" format:"uuid" doc:"Counterparty UUID"`
	Body UpdateCounterpartyBody
}

// UpdateCounterpartyOutput is the Huma output for editing a counterparty.
type UpdateCounterpartyOutput struct {
	Status int
}

// counterpartyUpdater is the interface for editing counterparties.
type counterpartyUpdater interface {
	UpdateCounterparty(ctx context.Context, userID string, kind storagecp.Kind, id uuid.UUID, draft ledger.CounterpartyDraft) error
}

// UpdateCounterpartyHandler handles PUT /v1/counterparty/{id}.
type UpdateCounterpartyHandler struct {
	CounterpartyService counterpartyUpdater
}

// NewUpdateCounterpartyHandler creates a new UpdateCounterpartyHandler.
func NewUpdateCounterpartyHandler(svc counterpartyUpdater) *UpdateCounterpartyHandler {
	return &UpdateCounterpartyHandler{CounterpartyService: svc}
}

// Register registers the update counterparty endpoint with the Huma API.
func (h *UpdateCounterpartyHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-counterparty",
		Method:      http.MethodPut,
		Path:        "/v1/counterparty/{id}",
		Summary:     "Update counterparty",
		Description: "Edits a counterparty's name, contact numbers and balance.",
		Tags:        []string{"Counterparties"},
	}, h.handle)
}

func (h *UpdateCounterpartyHandler) handle(ctx context.Context, input *UpdateCounterpartyInput) (*UpdateCounterpartyOutput, error) {
	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid id", err)
	}
	kind, err := service.ParseCounterpartyKind(input.Body.Kind)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid kind", err)
	}

	err = h.CounterpartyService.UpdateCounterparty(ctx, userID, kind, id, ledger.CounterpartyDraft{
		Name:           input.Body.Name,
		ContactNumbers: input.Body.ContactNumbers,
		Balance:        input.Body.Balance,
	})
	if err != nil {
		return nil, apierror.Map(err, "failed to update counterparty")
	}

	return &UpdateCounterpartyOutput{Status: http.StatusNoContent}, nil
}
