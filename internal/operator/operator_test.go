package operator

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stephenafamo/scan"
	"github.com/stretchr/testify/assert"

	"github.com/khata-labs/ledger-server/internal/storage"
)

// fakeTx records commit/rollback calls; no statement ever reaches it because
// the actions in these tests never touch the entity writers.
type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(ctx context.Context, query string, args ...any) (scan.Rows, error) {
	return nil, nil
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeStore struct {
	tx       *fakeTx
	writeErr error
}

func (s *fakeStore) Write(ctx context.Context) (*storage.Writer, error) {
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	s.tx = &fakeTx{}
	return storage.NewWriter(s.tx), nil
}

type stubAction struct {
	err       error
	performed bool
}

func (a *stubAction) Perform(ctx context.Context, writer *storage.Writer) error {
	a.performed = true
	return a.err
}

func newRunningDelegator(t *testing.T, store *fakeStore) *OperatorDelegator {
	t.Helper()
	delegator := NewOperatorDelegator(store, 2)
	delegator.Start()
	t.Cleanup(delegator.Stop)
	return delegator
}

func TestProcess_SuccessCommits(t *testing.T) {
	store := &fakeStore{}
	delegator := newRunningDelegator(t, store)

	action := &stubAction{}
	err := delegator.Process(context.Background(), action)

	assert.NoError(t, err)
	assert.True(t, action.performed)
	assert.True(t, store.tx.committed)
	assert.False(t, store.tx.rolledBack)
}

func TestProcess_ActionErrorRollsBack(t *testing.T) {
	store := &fakeStore{}
	delegator := newRunningDelegator(t, store)

	actionErr := errors.New("balance update failed")
	action := &stubAction{err: actionErr}
	err := delegator.Process(context.Background(), action)

	assert.ErrorIs(t, err, actionErr)
	assert.True(t, store.tx.rolledBack, "failed action must leave no partial writes")
	assert.False(t, store.tx.committed)
}

func TestProcess_WriteErrorPropagates(t *testing.T) {
	writeErr := errors.New("connection refused")
	store := &fakeStore{writeErr: writeErr}
	delegator := newRunningDelegator(t, store)

	err := delegator.Process(context.Background(), &stubAction{})

	assert.ErrorIs(t, err, writeErr)
}

func TestProcess_CancelledContext(t *testing.T) {
	store := &fakeStore{}
	delegator := newRunningDelegator(t, store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := delegator.Process(ctx, &stubAction{})

	// Either the worker finished the item first or the cancellation won; both
	// are acceptable, but a cancelled context must never hang.
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestStop_DrainsAndStops(t *testing.T) {
	store := &fakeStore{}
	delegator := NewOperatorDelegator(store, 1)
	delegator.Start()

	action := &stubAction{}
	err := delegator.Process(context.Background(), action)
	assert.NoError(t, err)

	delegator.Stop()
	delegator.Stop() // idempotent
	assert.True(t, action.performed)
}
