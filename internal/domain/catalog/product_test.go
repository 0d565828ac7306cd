package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Test Product", decimal.NewFromInt(25))
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "SKU-001", product.Code)
		assert.Equal(t, "Test Product", product.Name)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(25)))
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.Nil(t, product.CategoryID)
		assert.Nil(t, product.SupplierID)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("converts code to uppercase", func(t *testing.T) {
		product, err := NewProduct("sku-001", "Test Product", decimal.Zero)
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", product.Code)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("SKU-002", "Test Product", decimal.Zero)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, product.Code, event.Code)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewProduct("", "Test Product", decimal.Zero)
		require.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("SKU-003", "", decimal.Zero)
		require.Error(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("SKU-004", "Test Product", decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

func TestProductChangePrice(t *testing.T) {
	t.Run("updates price and publishes event", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Test Product", decimal.NewFromInt(10))
		require.NoError(t, err)
		product.ClearDomainEvents()

		err = product.ChangePrice(decimal.NewFromInt(15))
		require.NoError(t, err)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(15)))
		assert.Equal(t, 2, product.GetVersion())

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(*ProductPriceChangedEvent)
		require.True(t, ok)
		assert.True(t, event.OldPrice.Equal(decimal.NewFromInt(10)))
		assert.True(t, event.NewPrice.Equal(decimal.NewFromInt(15)))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Test Product", decimal.NewFromInt(10))
		require.NoError(t, err)

		err = product.ChangePrice(decimal.NewFromInt(-5))
		require.Error(t, err)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(10)))
	})
}

func TestProductStatus(t *testing.T) {
	product, err := NewProduct("SKU-001", "Test Product", decimal.Zero)
	require.NoError(t, err)
	assert.True(t, product.IsActive())

	product.Deactivate()
	assert.False(t, product.IsActive())
	assert.Equal(t, ProductStatusInactive, product.Status)

	product.Activate()
	assert.True(t, product.IsActive())
}
