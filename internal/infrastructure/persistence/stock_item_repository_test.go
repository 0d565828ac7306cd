package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wims/backend/internal/domain/catalog"
	"github.com/wims/backend/internal/domain/inventory"
	"github.com/wims/backend/internal/domain/shared"
)

func TestStockItemRepositoryGetOrCreate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockItemRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()
	productID := uuid.New()

	t.Run("creates zero-quantity item when absent", func(t *testing.T) {
		item, err := repo.GetOrCreate(ctx, warehouseID, productID)
		require.NoError(t, err)
		assert.True(t, item.Quantity.IsZero())
		assert.Equal(t, warehouseID, item.WarehouseID)
		assert.Equal(t, productID, item.ProductID)
	})

	t.Run("returns existing item on second call", func(t *testing.T) {
		first, err := repo.GetOrCreate(ctx, warehouseID, productID)
		require.NoError(t, err)

		second, err := repo.GetOrCreate(ctx, warehouseID, productID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		count, err := repo.CountByWarehouse(ctx, warehouseID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestStockItemRepositorySaveWithLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockItemRepository(db)
	ctx := context.Background()

	item, err := inventory.NewStockItem(uuid.New(), uuid.New())
	require.NoError(t, err)
	require.NoError(t, item.Increase(decimal.NewFromInt(100)))
	require.NoError(t, repo.Save(ctx, item))

	t.Run("persists update when version matches", func(t *testing.T) {
		require.NoError(t, item.Decrease(decimal.NewFromInt(30)))
		require.NoError(t, repo.SaveWithLock(ctx, item))

		stored, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.True(t, stored.Quantity.Equal(decimal.NewFromInt(70)))
		assert.Equal(t, item.Version, stored.Version)
	})

	t.Run("rejects update when stored version moved on", func(t *testing.T) {
		stale, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)

		// Another writer commits first
		require.NoError(t, item.Decrease(decimal.NewFromInt(10)))
		require.NoError(t, repo.SaveWithLock(ctx, item))

		require.NoError(t, stale.Decrease(decimal.NewFromInt(10)))
		err = repo.SaveWithLock(ctx, stale)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

		stored, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.True(t, stored.Quantity.Equal(decimal.NewFromInt(60)))
	})
}

func TestStockItemRepositorySummarizeWarehouse(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockItemRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()

	cheap, err := catalog.NewProduct("SKU-CHEAP", "Cheap Part", decimal.NewFromInt(2))
	require.NoError(t, err)
	dear, err := catalog.NewProduct("SKU-DEAR", "Dear Part", decimal.NewFromInt(50))
	require.NoError(t, err)
	require.NoError(t, db.Create(cheap).Error)
	require.NoError(t, db.Create(dear).Error)

	seed := func(productID uuid.UUID, qty int64) {
		item, err := inventory.NewStockItem(warehouseID, productID)
		require.NoError(t, err)
		require.NoError(t, item.Increase(decimal.NewFromInt(qty)))
		require.NoError(t, repo.Save(ctx, item))
	}
	seed(cheap.ID, 10)
	seed(dear.ID, 4)

	summary, err := repo.SummarizeWarehouse(ctx, warehouseID)
	require.NoError(t, err)
	assert.True(t, summary.TotalQuantity.Equal(decimal.NewFromInt(14)), "got %s", summary.TotalQuantity)
	// 10*2 + 4*50
	assert.True(t, summary.TotalValue.Equal(decimal.NewFromInt(220)), "got %s", summary.TotalValue)

	t.Run("empty warehouse summarizes to zero", func(t *testing.T) {
		summary, err := repo.SummarizeWarehouse(ctx, uuid.New())
		require.NoError(t, err)
		assert.True(t, summary.TotalQuantity.IsZero())
		assert.True(t, summary.TotalValue.IsZero())
	})
}

func TestStockItemRepositorySumQuantityByProduct(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockItemRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	for _, qty := range []int64{25, 75} {
		item, err := inventory.NewStockItem(uuid.New(), productID)
		require.NoError(t, err)
		require.NoError(t, item.Increase(decimal.NewFromInt(qty)))
		require.NoError(t, repo.Save(ctx, item))
	}

	total, err := repo.SumQuantityByProduct(ctx, productID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(100)))

	total, err = repo.SumQuantityByProduct(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestStockItemRepositoryDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockItemRepository(db)
	ctx := context.Background()

	err := repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
