package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockItem(t *testing.T) {
	t.Run("creates item with zero quantity", func(t *testing.T) {
		item, err := NewStockItem(uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.True(t, item.Quantity.IsZero())
		assert.Equal(t, 1, item.GetVersion())
	})

	t.Run("fails with nil warehouse", func(t *testing.T) {
		_, err := NewStockItem(uuid.Nil, uuid.New())
		require.Error(t, err)
	})

	t.Run("fails with nil product", func(t *testing.T) {
		_, err := NewStockItem(uuid.New(), uuid.Nil)
		require.Error(t, err)
	})
}

func TestStockItemIncrease(t *testing.T) {
	item, err := NewStockItem(uuid.New(), uuid.New())
	require.NoError(t, err)

	require.NoError(t, item.Increase(decimal.NewFromInt(50)))
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 2, item.GetVersion())

	events := item.GetDomainEvents()
	require.Len(t, events, 1)
	event, ok := events[0].(*StockIncreasedEvent)
	require.True(t, ok)
	assert.True(t, event.Before.IsZero())
	assert.True(t, event.After.Equal(decimal.NewFromInt(50)))

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		require.Error(t, item.Increase(decimal.Zero))
		require.Error(t, item.Increase(decimal.NewFromInt(-5)))
	})
}

func TestStockItemDecrease(t *testing.T) {
	newItemWith := func(qty int64) *StockItem {
		item, err := NewStockItem(uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, item.Increase(decimal.NewFromInt(qty)))
		item.ClearDomainEvents()
		return item
	}

	t.Run("decreases available stock", func(t *testing.T) {
		item := newItemWith(50)
		require.NoError(t, item.Decrease(decimal.NewFromInt(10)))
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(40)))
	})

	t.Run("fails when quantity exceeds stock", func(t *testing.T) {
		item := newItemWith(50)
		err := item.Decrease(decimal.NewFromInt(60))
		require.Error(t, err)
		assert.True(t, item.Quantity.Equal(decimal.NewFromInt(50)), "stock unchanged after failed decrease")
	})

	t.Run("can drain to exactly zero", func(t *testing.T) {
		item := newItemWith(50)
		require.NoError(t, item.Decrease(decimal.NewFromInt(50)))
		assert.True(t, item.Quantity.IsZero())
	})
}

func TestTransactionSignedQuantity(t *testing.T) {
	itemID, warehouseID, productID := uuid.New(), uuid.New(), uuid.New()

	in, err := NewInventoryTransaction(itemID, warehouseID, productID,
		TransactionTypeTransferIn, decimal.NewFromInt(20), decimal.NewFromInt(3),
		decimal.Zero, decimal.NewFromInt(20), SourceTypeTransfer, "tr-1")
	require.NoError(t, err)
	assert.True(t, in.SignedQuantity().Equal(decimal.NewFromInt(20)))
	assert.True(t, in.TotalValue.Equal(decimal.NewFromInt(60)))

	out, err := NewInventoryTransaction(itemID, warehouseID, productID,
		TransactionTypeTransferOut, decimal.NewFromInt(15), decimal.NewFromInt(3),
		decimal.NewFromInt(20), decimal.NewFromInt(5), SourceTypeTransfer, "tr-1")
	require.NoError(t, err)
	assert.True(t, out.SignedQuantity().Equal(decimal.NewFromInt(-15)))
}

func TestNewInventoryTransactionValidation(t *testing.T) {
	itemID, warehouseID, productID := uuid.New(), uuid.New(), uuid.New()

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewInventoryTransaction(itemID, warehouseID, productID,
			TransactionTypeInbound, decimal.Zero, decimal.NewFromInt(1),
			decimal.Zero, decimal.Zero, SourceTypeReceiving, "rx-1")
		require.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewInventoryTransaction(itemID, warehouseID, productID,
			TransactionType("BOGUS"), decimal.NewFromInt(1), decimal.NewFromInt(1),
			decimal.Zero, decimal.NewFromInt(1), SourceTypeReceiving, "rx-1")
		require.Error(t, err)
	})

	t.Run("rejects empty source id", func(t *testing.T) {
		_, err := NewInventoryTransaction(itemID, warehouseID, productID,
			TransactionTypeInbound, decimal.NewFromInt(1), decimal.NewFromInt(1),
			decimal.Zero, decimal.NewFromInt(1), SourceTypeReceiving, "")
		require.Error(t, err)
	})
}
