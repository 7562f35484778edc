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

// CreateCounterpartyBody is the request body for creating a counterparty.
type CreateCounterpartyBody struct {
	Kind           string   `json:"kind" required:"true" enum:"vendor,customer" doc:"vendor or customer"`
	Name           string   `json:"name" required:"true" doc:"Display name"`
	ContactNumbers []string `json:"contactNumbers" doc:"Contact numbers, at least one non-blank"`
	Balance        string   `json:"balance" required:"true" doc:"Opening decimal balance"`
}

// CreateCounterpartyInput is the Huma input for creating a counterparty.
type CreateCounterpartyInput struct {
	Body CreateCounterpartyBody
}

// CreateCounterpartyResponse is the response body for creating a counterparty.
type CreateCounterpartyResponse struct {
	ID string `json:"id" doc:"Counterparty UUID"`
}

// CreateCounterpartyOutput is the Huma output for creating a counterparty.
type CreateCounterpartyOutput struct {
	Status int
	Body   CreateCounterpartyResponse
}

// counterpartyCreator is the interface for creating counterparties.
type counterpartyCreator interface {
	CreateCounterparty(ctx context.Context, userID string, kind storagecp.Kind, draft ledger.CounterpartyDraft) (uuid.UUID, error)
}

// CreateCounterpartyHandler handles POST /v1/counterparty.
type CreateCounterpartyHandler struct {
	CounterpartyService counterpartyCreator
}

// NewCreateCounterpartyHandler creates a new CreateCounterpartyHandler.
func NewCreateCounterpartyHandler(svc counterpartyCreator) *CreateCounterpartyHandler {
	return &CreateCounterpartyHandler{CounterpartyService: svc}
}

// Register registers the create counterparty endpoint with the Huma API.
func (h *CreateCounterpartyHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-counterparty",
		Method:      http.MethodPost,
		Path:        "/v1/counterparty",
		Summary:     "Create counterparty",
		Description: "Creates a new vendor or customer with an opening balance.",
		Tags:        []string{"Counterparties"},
	}, h.handle)
}

func (h *CreateCounterpartyHandler) handle(ctx context.Context, input *CreateCounterpartyInput) (*CreateCounterpartyOutput, error) {
	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	kind, err := service.ParseCounterpartyKind(input.Body.Kind)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid kind", err)
	}

	id, err := h.CounterpartyService.CreateCounterparty(ctx, userID, kind, ledger.CounterpartyDraft{
		Name:           input.Body.Name,
		ContactNumbers: input.Body.ContactNumbers,
		Balance:        input.Body.Balance,
	})
	if err != nil {
		return nil, apierror.Map(err, "failed to create counterparty")
	}

	return &CreateCounterpartyOutput{
		Status: http.StatusCreated,
		Body:   CreateCounterpartyResponse{ID: id.String()},
	}, nil
}
