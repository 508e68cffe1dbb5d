package registers_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ray-remotestate/pos/models"
	"github.com/ray-remotestate/pos/registers"
	"github.com/ray-remotestate/pos/store"
	"github.com/ray-remotestate/pos/store/memory"
)

func newManager(t *testing.T) (*registers.Manager, uuid.UUID, context.Context) {
	t.Helper()
	repo := memory.New()
	mgr := registers.NewManager(repo)
	ctx := context.Background()

	registerID := uuid.New()
	require.NoError(t, repo.UpsertRegister(ctx, models.CashRegister{
		ID:       registerID,
		BranchID: uuid.New(),
		Name:     "Caja 1",
		IsActive: true,
	}))
	return mgr, registerID, ctx
}

func TestSessionLifecycle(t *testing.T) {
	mgr, registerID, ctx := newManager(t)

	sess, err := mgr.Open(ctx, registerID, uuid.New(), "ana", 100)
	require.NoError(t, err)
	assert.Equal(t, 100.0, sess.OpeningAmount)
	assert.Equal(t, 0.0, sess.TotalSales)

	_, err = mgr.RecordSale(ctx, registerID, 27.84)
	require.NoError(t, err)
	sess, err = mgr.RecordSale(ctx, registerID, 15.00)
	require.NoError(t, err)
	assert.InDelta(t, 42.84, sess.TotalSales, 1e-9)

	closed, err := mgr.Close(ctx, registerID, 142.84)
	require.NoError(t, err)
	require.NotNil(t, closed.ExpectedAmount)
	require.NotNil(t, closed.Discrepancy)
	assert.InDelta(t, 142.84, *closed.ExpectedAmount, 1e-9)
	assert.InDelta(t, 0, *closed.Discrepancy, 1e-9)
	assert.True(t, closed.IsClosed())
}

func TestAtMostOneOpenSessionPerRegister(t *testing.T) {
	mgr, registerID, ctx := newManager(t)

	_, err := mgr.Open(ctx, registerID, uuid.New(), "ana", 100)
	require.NoError(t, err)

	_, err = mgr.Open(ctx, registerID, uuid.New(), "luis", 50)
	assert.ErrorIs(t, err, store.ErrConflict)

	// closing frees the register for the next shift
	_, err = mgr.Close(ctx, registerID, 100)
	require.NoError(t, err)
	_, err = mgr.Open(ctx, registerID, uuid.New(), "luis", 50)
	assert.NoError(t, err)
}

func TestRecordSaleNeedsAnOpenSession(t *testing.T) {
	mgr, registerID, ctx := newManager(t)

	_, err := mgr.RecordSale(ctx, registerID, 10)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = mgr.Open(ctx, registerID, uuid.New(), "ana", 100)
	require.NoError(t, err)
	_, err = mgr.Close(ctx, registerID, 100)
	require.NoError(t, err)

	_, err = mgr.RecordSale(ctx, registerID, 10)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = mgr.Open(ctx, registerID, uuid.New(), "ana", 100)
	require.NoError(t, err)
	_, err = mgr.RecordSale(ctx, registerID, -5)
	assert.ErrorIs(t, err, store.ErrValidation)
}

func TestOpenValidation(t *testing.T) {
	mgr, registerID, ctx := newManager(t)

	_, err := mgr.Open(ctx, registerID, uuid.New(), "ana", -1)
	assert.ErrorIs(t, err, store.ErrValidation)

	_, err = mgr.Open(ctx, uuid.New(), uuid.New(), "ana", 100)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = mgr.Close(ctx, registerID, 100)
	assert.ErrorIs(t, err, store.ErrNotFound, "closing without an open session")
}
