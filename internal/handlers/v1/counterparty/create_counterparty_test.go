package counterparty

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/ledger"
	"github.com/khata-labs/ledger-server/internal/service"
	storagecp "github.com/khata-labs/ledger-server/internal/storage/counterparty"
)

type mockCounterpartyService struct {
	mock.Mock
}

func (m *mockCounterpartyService) CreateCounterparty(ctx context.Context, userID string, kind storagecp.Kind, draft ledger.CounterpartyDraft) (uuid.UUID, error) {
	args := m.Called(ctx, userID, kind, draft)
	if args.Get(0) == nil {
		return uuid.Nil, args.Error(1)
	}
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockCounterpartyService) SuggestCounterparties(ctx context.Context, userID string, kind storagecp.Kind, query string) ([]service.Counterparty, error) {
	args := m.Called(ctx, userID, kind, query)
	var rows []service.Counterparty
	if v := args.Get(0); v != nil {
		rows = v.([]service.Counterparty)
	}
	return rows, args.Error(1)
}

const userHeader = "X-User-ID: user-1"

func newCreateTestAPI(t *testing.T, svc counterpartyCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(auth.NewMiddleware(api))
	NewCreateCounterpartyHandler(svc).Register(api)
	return api
}

func TestHTTP_CreateCounterparty_Success(t *testing.T) {
	cpID := uuid.Must(uuid.NewV4())

	mockSvc := new(mockCounterpartyService)
	mockSvc.On("CreateCounterparty", mock.Anything, "user-1", storagecp.KindVendor, mock.MatchedBy(func(draft ledger.CounterpartyDraft) bool {
		return draft.Name == "Acme Traders" &&
			len(draft.ContactNumbers) == 1 &&
			draft.Balance == "500"
	})).Return(cpID, nil)

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/counterparty", userHeader, CreateCounterpartyBody{
		Kind:           "vendor",
		Name:           "Acme Traders",
		ContactNumbers: []string{"0123456789"},
		Balance:        "500",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateCounterpartyResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, cpID.String(), body.ID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreateCounterparty_DuplicateName(t *testing.T) {
	mockSvc := new(mockCounterpartyService)
	mockSvc.On("CreateCounterparty", mock.Anything, "user-1", storagecp.KindVendor, mock.Anything).
		Return(nil, ledger.FieldErrors{"name": "Name already exists."})

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/counterparty", userHeader, CreateCounterpartyBody{
		Kind:           "vendor",
		Name:           "Acme Traders",
		ContactNumbers: []string{"0123456789"},
		Balance:        "0",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "body.name")
	assert.Contains(t, resp.Body.String(), "Name already exists.")
}

func TestHTTP_CreateCounterparty_InvalidKind(t *testing.T) {
	mockSvc := new(mockCounterpartyService)

	// Huma's enum schema validation rejects this before the handler runs.
	resp := newCreateTestAPI(t, mockSvc).Post("/v1/counterparty", userHeader, CreateCounterpartyBody{
		Kind:           "supplier",
		Name:           "Acme Traders",
		ContactNumbers: []string{"0123456789"},
		Balance:        "0",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateCounterparty", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_CreateCounterparty_MissingIdentity(t *testing.T) {
	mockSvc := new(mockCounterpartyService)

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/counterparty", CreateCounterpartyBody{
		Kind:           "vendor",
		Name:           "Acme Traders",
		ContactNumbers: []string{"0123456789"},
		Balance:        "0",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateCounterparty", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
