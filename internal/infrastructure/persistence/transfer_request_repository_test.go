package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wims/backend/internal/domain/shared"
	"github.com/wims/backend/internal/domain/transfer"
)

func newStoredTransferRequest(t *testing.T, repo *GormTransferRequestRepository, fromID, toID uuid.UUID) *transfer.TransferRequest {
	t.Helper()

	request, err := transfer.NewTransferRequest(fromID, toID, transfer.TransferTypeRegularToRegular, uuid.New(), "restock")
	require.NoError(t, err)
	require.NoError(t, request.AddItem(uuid.New(), "Widget", decimal.NewFromInt(5), decimal.NewFromInt(3)))
	require.NoError(t, request.AddItem(uuid.New(), "Gadget", decimal.NewFromInt(2), decimal.NewFromInt(10)))
	require.NoError(t, request.Submit())
	require.NoError(t, repo.Save(context.Background(), request))
	return request
}

func TestTransferRequestRepositorySaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransferRequestRepository(db)
	ctx := context.Background()

	fromID, toID := uuid.New(), uuid.New()
	request := newStoredTransferRequest(t, repo, fromID, toID)

	stored, err := repo.FindByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, transfer.TransferStatusPending, stored.Status)
	assert.Len(t, stored.Items, 2)
	assert.True(t, stored.TotalQuantity.Equal(decimal.NewFromInt(7)))
	// 5*3 + 2*10
	assert.True(t, stored.TotalPrice.Equal(decimal.NewFromInt(35)))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTransferRequestRepositorySaveWithLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransferRequestRepository(db)
	ctx := context.Background()

	request := newStoredTransferRequest(t, repo, uuid.New(), uuid.New())

	t.Run("persists transition when version matches", func(t *testing.T) {
		require.NoError(t, request.Approve())
		require.NoError(t, repo.SaveWithLock(ctx, request))

		stored, err := repo.FindByID(ctx, request.ID)
		require.NoError(t, err)
		assert.Equal(t, transfer.TransferStatusApproved, stored.Status)
	})

	t.Run("rejects concurrent transition", func(t *testing.T) {
		stale, err := repo.FindByID(ctx, request.ID)
		require.NoError(t, err)

		require.NoError(t, request.Ship())
		require.NoError(t, repo.SaveWithLock(ctx, request))

		require.NoError(t, stale.Cancel("no longer needed"))
		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		stored, err := repo.FindByID(ctx, request.ID)
		require.NoError(t, err)
		assert.Equal(t, transfer.TransferStatusInTransit, stored.Status)
	})
}

func TestTransferRequestRepositoryFindByWarehouse(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransferRequestRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()
	outgoing := newStoredTransferRequest(t, repo, warehouseID, uuid.New())
	incoming := newStoredTransferRequest(t, repo, uuid.New(), warehouseID)
	newStoredTransferRequest(t, repo, uuid.New(), uuid.New())

	requests, err := repo.FindByWarehouse(ctx, warehouseID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, requests, 2)

	ids := []uuid.UUID{requests[0].ID, requests[1].ID}
	assert.Contains(t, ids, outgoing.ID)
	assert.Contains(t, ids, incoming.ID)
}

func TestTransferRequestRepositoryCountActiveByWarehouse(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransferRequestRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()

	active := newStoredTransferRequest(t, repo, warehouseID, uuid.New())
	require.NoError(t, active.Approve())
	require.NoError(t, repo.SaveWithLock(ctx, active))

	done := newStoredTransferRequest(t, repo, uuid.New(), warehouseID)
	require.NoError(t, done.Decline("not feasible"))
	require.NoError(t, repo.SaveWithLock(ctx, done))

	count, err := repo.CountActiveByWarehouse(ctx, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTransferRequestRepositoryFindByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTransferRequestRepository(db)
	ctx := context.Background()

	pending := newStoredTransferRequest(t, repo, uuid.New(), uuid.New())
	approved := newStoredTransferRequest(t, repo, uuid.New(), uuid.New())
	require.NoError(t, approved.Approve())
	require.NoError(t, repo.SaveWithLock(ctx, approved))

	requests, err := repo.FindByStatus(ctx, transfer.TransferStatusPending, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, pending.ID, requests[0].ID)
}
