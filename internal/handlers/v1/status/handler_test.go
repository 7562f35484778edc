package status

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"

	"github.com/khata-labs/ledger-server/internal/auth"
)

func TestHTTP_Status_OpenWithoutIdentity(t *testing.T) {
	_, api := humatest.New(t)
	api.UseMiddleware(auth.NewMiddleware(api))
	NewHandler().Register(api)

	// No identity header: the probe must stay reachable for load balancers.
	resp := api.Get("/status")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"ok"`)
}
