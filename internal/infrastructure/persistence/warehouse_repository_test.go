package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wims/backend/internal/domain/partner"
	"github.com/wims/backend/internal/domain/shared"
)

func TestWarehouseRepositorySaveManagers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormWarehouseRepository(db)
	ctx := context.Background()

	keptManager := uuid.New()
	droppedManager := uuid.New()

	warehouse, err := partner.NewWarehouse("wh-east", "East Warehouse", partner.WarehouseTypeRegular)
	require.NoError(t, err)
	require.NoError(t, warehouse.AssignManager(keptManager))
	require.NoError(t, warehouse.AssignManager(droppedManager))
	require.NoError(t, repo.Save(ctx, warehouse))

	stored, err := repo.FindByID(ctx, warehouse.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Managers, 2)
	assert.Equal(t, "WH-EAST", stored.Code)

	t.Run("removed manager rows are deleted", func(t *testing.T) {
		require.NoError(t, stored.UnassignManager(droppedManager))
		require.NoError(t, repo.Save(ctx, stored))

		reloaded, err := repo.FindByID(ctx, warehouse.ID)
		require.NoError(t, err)
		require.Len(t, reloaded.Managers, 1)
		assert.Equal(t, keptManager, reloaded.Managers[0].UserID)
	})
}

func TestWarehouseRepositoryFindManagedBy(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormWarehouseRepository(db)
	ctx := context.Background()

	managerID := uuid.New()

	managed, err := partner.NewWarehouse("WH-A", "Alpha", partner.WarehouseTypeSuper)
	require.NoError(t, err)
	require.NoError(t, managed.AssignManager(managerID))
	require.NoError(t, repo.Save(ctx, managed))

	unmanaged, err := partner.NewWarehouse("WH-B", "Beta", partner.WarehouseTypeRegular)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, unmanaged))

	warehouses, err := repo.FindManagedBy(ctx, managerID)
	require.NoError(t, err)
	require.Len(t, warehouses, 1)
	assert.Equal(t, managed.ID, warehouses[0].ID)

	warehouses, err = repo.FindManagedBy(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, warehouses)
}

func TestWarehouseRepositoryFindByCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormWarehouseRepository(db)
	ctx := context.Background()

	warehouse, err := partner.NewWarehouse("WH-MAIN", "Main", partner.WarehouseTypeSuper)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, warehouse))

	stored, err := repo.FindByCode(ctx, "wh-main")
	require.NoError(t, err)
	assert.Equal(t, warehouse.ID, stored.ID)

	exists, err := repo.ExistsByCode(ctx, "wh-main")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByCode(ctx, "WH-MISSING")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestWarehouseRepositoryDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormWarehouseRepository(db)
	ctx := context.Background()

	warehouse, err := partner.NewWarehouse("WH-DEL", "Doomed", partner.WarehouseTypeRegular)
	require.NoError(t, err)
	require.NoError(t, warehouse.AssignManager(uuid.New()))
	require.NoError(t, repo.Save(ctx, warehouse))

	require.NoError(t, repo.Delete(ctx, warehouse.ID))

	_, err = repo.FindByID(ctx, warehouse.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var managerCount int64
	require.NoError(t, db.Model(&partner.WarehouseManager{}).
		Where("warehouse_id = ?", warehouse.ID).
		Count(&managerCount).Error)
	assert.Equal(t, int64(0), managerCount)

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
}
