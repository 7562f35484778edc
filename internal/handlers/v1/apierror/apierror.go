// Package apierror maps service and storage errors onto huma status errors so
// every handler reports failures the same way.
package apierror

import (
	"errors"
	"net/http"
	"sort"

	"github.com/danielgtaylor/huma/v2"

	"github.com/khata-labs/ledger-server/internal/ledger"
	"github.com/khata-labs/ledger-server/internal/storage/counterparty"
	"github.com/khata-labs/ledger-server/internal/storage/item"
	"github.com/khata-labs/ledger-server/internal/storage/transaction"
)

// Map converts an error from the service layer into the huma error the client
// should see. Validation failures become a 422 with one detail per field,
// missing records become a 404, anything else becomes a 500 carrying the
// fallback message.
func Map(err error, fallback string) error {
	var fieldErrs ledger.FieldErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for field := range fieldErrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		details := make([]error, len(fields))
		for i, field := range fields {
			details[i] = &huma.ErrorDetail{
				Message:  fieldErrs[field],
				Location: "body." + field,
			}
		}
		return huma.NewError(http.StatusUnprocessableEntity, "validation failed", details...)
	}

	if errors.Is(err, counterparty.ErrNotFound) ||
		errors.Is(err, item.ErrNotFound) ||
		errors.Is(err, transaction.ErrNotFound) {
		return huma.NewError(http.StatusNotFound, "not found")
	}

	return huma.NewError(http.StatusInternalServerError, fallback, err)
}
