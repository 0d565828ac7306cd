package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWarehouse(t *testing.T) {
	t.Run("creates warehouse with valid inputs", func(t *testing.T) {
		warehouse, err := NewWarehouse("WH-001", "Main Warehouse", WarehouseTypeSuper)
		require.NoError(t, err)
		require.NotNil(t, warehouse)

		assert.Equal(t, "WH-001", warehouse.Code)
		assert.Equal(t, "Main Warehouse", warehouse.Name)
		assert.Equal(t, WarehouseTypeSuper, warehouse.Type)
		assert.Equal(t, WarehouseStatusActive, warehouse.Status)
		assert.Empty(t, warehouse.Managers)
		assert.Equal(t, 1, warehouse.GetVersion())
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewWarehouse("", "Main Warehouse", WarehouseTypeRegular)
		require.Error(t, err)
	})

	t.Run("fails with invalid type", func(t *testing.T) {
		_, err := NewWarehouse("WH-001", "Main Warehouse", WarehouseType("virtual"))
		require.Error(t, err)
	})
}

func TestWarehouseManagers(t *testing.T) {
	t.Run("assigns and queries managers", func(t *testing.T) {
		warehouse, err := NewWarehouse("WH-001", "Main Warehouse", WarehouseTypeRegular)
		require.NoError(t, err)

		userID := uuid.New()
		assert.False(t, warehouse.IsManagedBy(userID))
		assert.False(t, warehouse.HasManagers())

		require.NoError(t, warehouse.AssignManager(userID))
		assert.True(t, warehouse.IsManagedBy(userID))
		assert.True(t, warehouse.HasManagers())
		assert.Equal(t, []uuid.UUID{userID}, warehouse.ManagerIDs())
	})

	t.Run("rejects duplicate assignment", func(t *testing.T) {
		warehouse, err := NewWarehouse("WH-001", "Main Warehouse", WarehouseTypeRegular)
		require.NoError(t, err)

		userID := uuid.New()
		require.NoError(t, warehouse.AssignManager(userID))
		require.Error(t, warehouse.AssignManager(userID))
		assert.Len(t, warehouse.Managers, 1)
	})

	t.Run("unassigns a manager", func(t *testing.T) {
		warehouse, err := NewWarehouse("WH-001", "Main Warehouse", WarehouseTypeRegular)
		require.NoError(t, err)

		userID := uuid.New()
		require.NoError(t, warehouse.AssignManager(userID))
		require.NoError(t, warehouse.UnassignManager(userID))
		assert.False(t, warehouse.IsManagedBy(userID))
	})

	t.Run("unassign of unknown manager fails", func(t *testing.T) {
		warehouse, err := NewWarehouse("WH-001", "Main Warehouse", WarehouseTypeRegular)
		require.NoError(t, err)

		require.Error(t, warehouse.UnassignManager(uuid.New()))
	})
}
