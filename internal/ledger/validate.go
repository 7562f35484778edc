package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldErrors maps a form field name to a user-facing error message. An empty
// map means the draft is valid.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%s: %s", field, fe[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NamedRecord is the sibling view the duplicate check needs: an opaque ID and
// a display name.
type NamedRecord struct {
	ID   string
	Name string
}

// IsDuplicateName reports whether a sibling other than the record being
// edited already carries the name, compared trimmed and case-insensitively.
func IsDuplicateName(name, editingID string, siblings []NamedRecord) bool {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for _, sibling := range siblings {
		if sibling.ID == editingID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(sibling.Name)) == normalized {
			return true
		}
	}
	return false
}

// CounterpartyDraft is the raw form input for adding or editing a vendor or
// customer. Numeric fields stay strings until validated.
type CounterpartyDraft struct {
	ID             string
	Name           string
	ContactNumbers []string
	Balance        string
}

// ValidateCounterpartyDraft checks a counterparty draft against its siblings.
func ValidateCounterpartyDraft(draft CounterpartyDraft, siblings []NamedRecord) FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(draft.Name)
	if name == "" {
		errs["name"] = "Name is required."
	} else if IsDuplicateName(name, draft.ID, siblings) {
		errs["name"] = "Name already exists."
	}

	if len(draft.ContactNumbers) == 0 {
		errs["contactNumbers"] = "At least one contact number is required."
	} else {
		for _, num := range draft.ContactNumbers {
			if strings.TrimSpace(num) == "" {
				errs["contactNumbers"] = "At least one valid contact number is required."
				break
			}
		}
	}

	// Opening balances may be any finite number, including negative.
	if strings.TrimSpace(draft.Balance) == "" {
		errs["balance"] = "Balance is required."
	} else if _, err := decimal.NewFromString(strings.TrimSpace(draft.Balance)); err != nil {
		errs["balance"] = "Enter a valid number."
	}

	return errs
}

// ItemDraft is the raw form input for a catalog item.
type ItemDraft struct {
	ID              string
	Name            string
	PurchasingPrice string
	SalesPrice      string
	Quantity        string
}

// ValidateItemDraft checks an item draft against its catalog siblings.
func ValidateItemDraft(draft ItemDraft, siblings []NamedRecord) FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(draft.Name)
	if name == "" {
		errs["name"] = "Item name is required."
	} else if IsDuplicateName(name, draft.ID, siblings) {
		errs["name"] = "Item name already exists."
	}

	validatePositiveDecimal(errs, "purchasingPrice", draft.PurchasingPrice, "purchasing price")
	validatePositiveDecimal(errs, "salesPrice", draft.SalesPrice, "sales price")

	qty := strings.TrimSpace(draft.Quantity)
	if qty == "" {
		errs["quantity"] = "Quantity is required."
	} else if d, err := decimal.NewFromString(qty); err != nil || !d.IsInteger() || d.IsNegative() {
		errs["quantity"] = "Enter a valid quantity."
	}

	return errs
}

// LineItemDraft is the raw form input for one transaction line.
type LineItemDraft struct {
	ID        string
	Name      string
	Quantity  string
	UnitPrice string
}

// ValidateLineItemDraft checks a line draft against the lines already on the
// transaction; a line duplicating another line's name is rejected.
func ValidateLineItemDraft(draft LineItemDraft, siblings []NamedRecord) FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(draft.Name)
	if name == "" {
		errs["name"] = "Item name required"
	} else if IsDuplicateName(name, draft.ID, siblings) {
		errs["name"] = "This item is already added."
	}

	qty := strings.TrimSpace(draft.Quantity)
	if d, err := decimal.NewFromString(qty); qty == "" || err != nil || !d.IsPositive() || !d.IsInteger() {
		errs["quantity"] = "Valid quantity required"
	}

	validatePositiveDecimal(errs, "unitPrice", draft.UnitPrice, "price")

	return errs
}

// TransactionDraft is the raw form input for committing a purchase or sale.
type TransactionDraft struct {
	CounterpartyName string
	LineItems        []LineItemDraft
	CashPaid         string
}

// ValidateTransactionDraft checks the submit-level rules. Line-level rules
// run per line as they are added, see ValidateLineItemDraft.
func ValidateTransactionDraft(draft TransactionDraft) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(draft.CounterpartyName) == "" {
		errs["counterpartyName"] = "Counterparty name required"
	}
	if len(draft.LineItems) == 0 {
		errs["lineItems"] = "Add at least one item"
	}

	cash := strings.TrimSpace(draft.CashPaid)
	if cash != "" {
		if d, err := decimal.NewFromString(cash); err != nil || d.IsNegative() {
			errs["cashPaid"] = "Enter a valid cash amount"
		}
	}

	return errs
}

func validatePositiveDecimal(errs FieldErrors, field, raw, label string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		errs[field] = fmt.Sprintf("A %s is required.", label)
		return
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil || !d.IsPositive() {
		errs[field] = fmt.Sprintf("Enter a valid %s.", label)
	}
}
