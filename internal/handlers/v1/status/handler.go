package status

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// StatusOutput is the Huma output for the status probe.
type StatusOutput struct {
	Body StatusBody
}

// StatusBody reports service liveness.
type StatusBody struct {
	Status string `json:"status" doc:"Always ok while the process serves traffic"`
}

// Handler handles GET /status.
type Handler struct{}

// NewHandler creates a new status Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Register registers the status endpoint with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "status",
		Method:      http.MethodGet,
		Path:        "/status",
		Summary:     "Service status",
		Description: "Liveness probe for load balancers.",
		Tags:        []string{"Status"},
	}, h.handle)
}

func (h *Handler) handle(_ context.Context, _ *struct{}) (*StatusOutput, error) {
	return &StatusOutput{Body: StatusBody{Status: "ok"}}, nil
}
