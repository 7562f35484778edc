package actions

import (
	"context"

	"github.com/khata-labs/ledger-server/internal/storage"
)

// IAction is one unit of transactional work. Perform runs inside a database
// transaction owned by the operator; returning an error rolls everything
// back. Actions expose output through their own fields, which are safe to
// read once Process returns.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
