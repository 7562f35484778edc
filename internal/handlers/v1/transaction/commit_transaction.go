package transaction

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/khata-labs/ledger-server/internal/auth"
	"github.com/khata-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/khata-labs/ledger-server/internal/ledger"
	"github.com/khata-labs/ledger-server/internal/logging"
	"github.com/khata-labs/ledger-server/internal/service"
)

// CommitTransactionBody is the request body for committing a transaction.
type CommitTransactionBody struct {
	Kind             string     `json:"kind" required:"true" enum:"purchase,sale" doc:"purchase or sale"`
	CounterpartyID   string     `json:"counterpartyID,omitempty" format:"uuid" doc:"Counterparty UUID, optional when counterpartyName is set"`
	CounterpartyName string     `json:"counterpartyName,omitempty" doc:"Counterparty name, resolved case-insensitively"`
	LineItems        []LineItem `json:"lineItems" required:"true" doc:"Ordered line items, at least one"`
	CashPaid         string     `json:"cashPaid,omitempty" doc:"Decimal cash settled now, defaults to zero"`
	TransactionDate  string     `json:"transactionDate,omitempty" doc:"RFC3339 transaction date, defaults to now"`
	AdjustStock      *bool      `json:"adjustStock,omitempty" doc:"Move catalog stock for each line, defaults to true"`
}

// CommitTransactionInput is the Huma input for committing a transaction.
type CommitTransactionInput struct {
	Body CommitTransactionBody
}

// CommitTransactionResponse is the response body for committing a transaction.
type CommitTransactionResponse struct {
	ID         string `json:"id" doc:"Transaction UUID"`
	Total      string `json:"total" doc:"Decimal sum of quantity times unit price"`
	CashPaid   string `json:"cashPaid" doc:"Decimal cash settled at commit"`
	OnAccount  string `json:"onAccount" doc:"Decimal amount carried on the ledger"`
	NewBalance string `json:"newBalance" doc:"Counterparty balance after the commit"`
}

// CommitTransactionOutput is the Huma output for committing a transaction.
type CommitTransactionOutput struct {
	Status int
	Body   CommitTransactionResponse
}

// transactionCommitter is the interface for committing transactions.
type transactionCommitter interface {
	Commit(ctx context.Context, userID string, req service.CommitRequest) (*service.CommitResult, error)
}

// CommitTransactionHandler handles POST /v1/transaction.
type CommitTransactionHandler struct {
	TransactionService transactionCommitter
}

// NewCommitTransactionHandler creates a new CommitTransactionHandler.
func NewCommitTransactionHandler(svc transactionCommitter) *CommitTransactionHandler {
	return &CommitTransactionHandler{TransactionService: svc}
}

// Register registers the commit transaction endpoint with the Huma API.
func (h *CommitTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "commit-transaction",
		Method:      http.MethodPost,
		Path:        "/v1/transaction",
		Summary:     "Commit transaction",
		Description: "Records a purchase or sale and moves the counterparty balance in one atomic write.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseCommitTransactionInput parses and validates the API input into a
// service commit request. Field-level draft validation happens in the service.
func parseCommitTransactionInput(input *CommitTransactionInput) (service.CommitRequest, error) {
	kind, err := service.ParseTransactionKind(input.Body.Kind)
	if err != nil {
		return service.CommitRequest{}, huma.NewError(http.StatusBadRequest, "invalid kind", err)
	}

	counterpartyID := uuid.Nil
	if input.Body.CounterpartyID != "" {
		counterpartyID, err = uuid.FromString(input.Body.CounterpartyID)
		if err != nil {
			return service.CommitRequest{}, huma.NewError(http.StatusBadRequest, "invalid counterpartyID", err)
		}
	}

	var transactionDate time.Time
	if input.Body.TransactionDate != "" {
		transactionDate, err = time.Parse(time.RFC3339, input.Body.TransactionDate)
		if err != nil {
			return service.CommitRequest{}, huma.NewError(http.StatusBadRequest, "invalid transactionDate", err)
		}
	}

	lines := make([]ledger.LineItemDraft, len(input.Body.LineItems))
	for i, li := range input.Body.LineItems {
		lines[i] = ledger.LineItemDraft{
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		}
	}

	adjustStock := true
	if input.Body.AdjustStock != nil {
		adjustStock = *input.Body.AdjustStock
	}

	return service.CommitRequest{
		Kind:             kind,
		CounterpartyID:   counterpartyID,
		CounterpartyName: input.Body.CounterpartyName,
		LineItems:        lines,
		CashPaid:         input.Body.CashPaid,
		TransactionDate:  transactionDate,
		AdjustStock:      adjustStock,
	}, nil
}

func (h *CommitTransactionHandler) handle(ctx context.Context, input *CommitTransactionInput) (*CommitTransactionOutput, error) {
	userID, err := auth.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}

	req, err := parseCommitTransactionInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("commitTransactionMs")
	}
	result, err := h.TransactionService.Commit(ctx, userID, req)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, apierror.Map(err, "failed to commit transaction")
	}

	if logData != nil {
		logData.AddData("transactionID", result.TransactionID.String())
	}

	return &CommitTransactionOutput{
		Status: http.StatusCreated,
		Body: CommitTransactionResponse{
			ID:         result.TransactionID.String(),
			Total:      result.Total.String(),
			CashPaid:   result.CashPaid.String(),
			OnAccount:  result.OnAccount.String(),
			NewBalance: result.NewBalance.String(),
		},
	}, nil
}
