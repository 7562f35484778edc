package operator

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/khata-labs/ledger-server/internal/operator/actions"
	"github.com/khata-labs/ledger-server/internal/storage"
)

// Store is the slice of storage the operator needs: the ability to open a
// transactional Writer.
type Store interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Operator is the worker that processes items from the queue. Every action
// runs inside a single database transaction: either all of its writes become
// durable or none do.
type Operator struct {
	store Store
	queue chan ActionItem
}

func NewOperator(store Store, queue chan ActionItem) *Operator {
	return &Operator{
		store: store,
		queue: queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	writer, err := o.store.Write(item.ctx)
	if err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	err = item.action.Perform(item.ctx, writer)
	if err != nil {
		if rollbackErr := writer.Rollback(item.ctx); rollbackErr != nil {
			logrus.WithError(rollbackErr).Error("Operator.processItem.rollback")
		}
		item.response <- ActionItemResponse{err: err}
		return
	}

	if err = writer.Commit(item.ctx); err != nil {
		item.response <- ActionItemResponse{err: err}
		return
	}

	item.response <- ActionItemResponse{}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
