package partner

import (
	"time"

	"github.com/google/uuid"
)

// WarehouseManager links a staff user to a warehouse they manage
type WarehouseManager struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_manager,priority:1"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_manager,priority:2"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (WarehouseManager) TableName() string {
	return "warehouse_managers"
}

// NewWarehouseManager creates a manager assignment
func NewWarehouseManager(warehouseID, userID uuid.UUID) WarehouseManager {
	return WarehouseManager{
		ID:          uuid.New(),
		WarehouseID: warehouseID,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
}
