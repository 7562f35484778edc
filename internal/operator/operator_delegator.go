package operator

import (
	"context"
	"sync"

	"github.com/khata-labs/ledger-server/internal/operator/actions"
)

// Processor is what services see: submit an action, wait for its outcome.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// OperatorDelegator manages the queue, starts/stops Operators (workers), and
// enqueues items.
type OperatorDelegator struct {
	store      Store
	queue      chan ActionItem
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

var _ Processor = (*OperatorDelegator)(nil)

func NewOperatorDelegator(store Store, numWorkers int) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &OperatorDelegator{
		store:      store,
		queue:      make(chan ActionItem, 1000),
		numWorkers: numWorkers,
	}
}

func (d *OperatorDelegator) Start() {
	for i := 0; i < d.numWorkers; i++ {
		d.wg.Add(1)
		op := NewOperator(d.store, d.queue)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
	})
}

// Process enqueues the action and blocks until a worker finishes it or the
// context is cancelled. The action itself carries any output values.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	d.queue <- item

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
