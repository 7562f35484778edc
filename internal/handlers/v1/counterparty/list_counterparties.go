package counterparty

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/logging"
	"github.com/khata-labs/ledger-server/internal/service"
	storagecp "github.com/khata-labs/ledger-server/internal/storage/counterparty"
)

// ListCounterpartiesCursor represents a pagination cursor in request and
// response bodies.
type ListCounterpartiesCursor struct {
	Position int `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit    int `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
}

// ListCounterpartiesBody is the request body for listing counterparties.
type ListCounterpartiesBody struct {
	Kind   string                    `json:"kind,omitempty" enum:",vendor,customer" doc:"Restrict to one kind, empty for both"`
	Query  string                    `json:"query,omitempty" doc:"Name filter; when set, paging is disabled"`
	Cursor *ListCounterpartiesCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListCounterpartiesInput is the Huma input for listing counterparties.
type ListCounterpartiesInput struct {
	Body ListCounterpartiesBody
}

// ListCounterpartiesResponseBody is the response body for listing counterparties.
type ListCounterpartiesResponseBody struct {
	Counterparties []Counterparty            `json:"counterparties" doc:"Page of counterparties"`
	NextCursor     *ListCounterpartiesCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListCounterpartiesOutput is the Huma output for listing counterparties.
type ListCounterpartiesOutput struct {
	Body ListCounterpartiesResponseBody
}

// counterpartyLister is the interface for listing counterparties.
type counterpartyLister interface {
	ListCounterparties(ctx context.Context, userID string, kind *storagecp.Kind, query string, cursor *service.CounterpartyCursor) ([]service.Counterparty, *service.CounterpartyCursor, error)
}

// ListCounterpartiesHandler handles POST /v1/counterparty/list.
type ListCounterpartiesHandler struct {
	CounterpartyService counterpartyLister
}

// NewListCounterpartiesHandler creates a new ListCounterpartiesHandler.
func NewListCounterpartiesHandler(svc counterpartyLister) *ListCounterpartiesHandler {
	return &ListCounterpartiesHandler{CounterpartyService: svc}
}

// Register registers the list counterparties endpoint with the Huma API.
func (h *ListCounterpartiesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-counterparties",
		Method:      http.MethodPost,
		Path:        "/v1/counterparty/list",
		Summary:     "List counterparties",
		Description: "Returns counterparties, paginated or filtered by a name query.",
		Tags:        []string{"Counterparties"},
	}, h.handle)
}

// parseListCounterpartiesInput parses and validates the API input.
func parseListCounterpartiesInput(input *ListCounterpartiesInput) (kind *storagecp.Kind, cursor *service.CounterpartyCursor, err error) {
	if input.Body.Kind != "" {
		parsed, parseErr := service.ParseCounterpartyKind(input.Body.Kind)
		if parseErr != nil {
			return nil, nil, huma.NewError(http.StatusBadRequest, "invalid kind", parseErr)
		}
		kind = &parsed
	}

	if input.Body.Cursor != nil {
		if input.Body.Cursor.Position < 0 {
			return nil, nil, huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
		}
		cursor = &service.CounterpartyCursor{
			Position: input.Body.Cursor.Position,
			Limit:    input.Body.Cursor.Limit,
		}
	}

	return kind, cursor, nil
}

func (h *ListCounterpartiesHandler) handle(ctx context.Context, input *ListCounterpartiesInput) (*ListCounterpartiesOutput, error) {
	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	kind, requestCursor, err := parseListCounterpartiesInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listCounterpartiesMs")
	}
	counterparties, nextCursor, err := h.CounterpartyService.ListCounterparties(ctx, userID, kind, input.Body.Query, requestCursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list counterparties", err)
	}

	if logData != nil {
		logData.AddData("counterpartyCount", len(counterparties))
	}

	resp := ListCounterpartiesResponseBody{
		Counterparties: make([]Counterparty, len(counterparties)),
	}
	for i, cp := range counterparties {
		resp.Counterparties[i] = fromService(cp)
	}

	if nextCursor != nil {
		resp.NextCursor = &ListCounterpartiesCursor{
			Position: nextCursor.Position,
			Limit:    nextCursor.Limit,
		}
	}

	return &ListCounterpartiesOutput{Body: resp}, nil
}
