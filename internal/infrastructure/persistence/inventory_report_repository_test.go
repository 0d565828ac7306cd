package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wims/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

func seedTransaction(t *testing.T, db *gorm.DB, warehouseID uuid.UUID, txType inventory.TransactionType, qty, price int64, at time.Time) {
	t.Helper()

	tx, err := inventory.NewInventoryTransaction(
		uuid.New(), warehouseID, uuid.New(),
		txType,
		decimal.NewFromInt(qty), decimal.NewFromInt(price),
		decimal.Zero, decimal.NewFromInt(qty),
		inventory.SourceTypeManualAdjustment, uuid.NewString(),
	)
	require.NoError(t, err)
	tx.TransactionDate = at
	require.NoError(t, db.Create(tx).Error)
}

func TestInventoryReportRepositoryAggregation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInventoryReportRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Before the range: +100 at price 10, -20 at price 10
	seedTransaction(t, db, warehouseID, inventory.TransactionTypeInbound, 100, 10, base.AddDate(0, -1, 0))
	seedTransaction(t, db, warehouseID, inventory.TransactionTypeOutbound, 20, 10, base.AddDate(0, 0, -10))

	// Inside [base, end]: +30 at price 10, -15 at price 10
	end := base.AddDate(0, 1, 0)
	seedTransaction(t, db, warehouseID, inventory.TransactionTypeTransferIn, 30, 10, base.AddDate(0, 0, 5))
	seedTransaction(t, db, warehouseID, inventory.TransactionTypeAdjustmentDecrease, 15, 10, base.AddDate(0, 0, 12))

	// Another warehouse never leaks into the aggregates
	seedTransaction(t, db, uuid.New(), inventory.TransactionTypeInbound, 999, 10, base)

	opening, err := repo.OpeningStock(ctx, warehouseID, base)
	require.NoError(t, err)
	assert.True(t, opening.Quantity.Equal(decimal.NewFromInt(80)), "got %s", opening.Quantity)
	assert.True(t, opening.Value.Equal(decimal.NewFromInt(800)), "got %s", opening.Value)

	inflow, err := repo.Inflow(ctx, warehouseID, base, end)
	require.NoError(t, err)
	assert.True(t, inflow.Quantity.Equal(decimal.NewFromInt(30)))
	assert.True(t, inflow.Value.Equal(decimal.NewFromInt(300)))

	outflow, err := repo.Outflow(ctx, warehouseID, base, end)
	require.NoError(t, err)
	assert.True(t, outflow.Quantity.Equal(decimal.NewFromInt(15)))
	assert.True(t, outflow.Value.Equal(decimal.NewFromInt(150)))
}

func TestInventoryReportRepositoryEmptyRange(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInventoryReportRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	opening, err := repo.OpeningStock(ctx, warehouseID, start)
	require.NoError(t, err)
	assert.True(t, opening.Quantity.IsZero())
	assert.True(t, opening.Value.IsZero())

	inflow, err := repo.Inflow(ctx, warehouseID, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.True(t, inflow.Quantity.IsZero())
}

func TestInventoryReportRepositoryLiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormInventoryReportRepository(db)
	stockRepo := NewGormStockItemRepository(db)
	ctx := context.Background()

	warehouseID := uuid.New()
	for _, qty := range []int64{40, 60} {
		item, err := inventory.NewStockItem(warehouseID, uuid.New())
		require.NoError(t, err)
		require.NoError(t, item.Increase(decimal.NewFromInt(qty)))
		require.NoError(t, stockRepo.Save(ctx, item))
	}

	live, err := repo.LiveQuantity(ctx, warehouseID)
	require.NoError(t, err)
	assert.True(t, live.Equal(decimal.NewFromInt(100)))

	live, err = repo.LiveQuantity(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, live.IsZero())
}
