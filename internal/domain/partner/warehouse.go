package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
)

// WarehouseStatus represents the status of a warehouse
type WarehouseStatus string

const (
	WarehouseStatusActive   WarehouseStatus = "active"
	WarehouseStatusInactive WarehouseStatus = "inactive"
)

// WarehouseType represents the type of warehouse
type WarehouseType string

const (
	WarehouseTypeSuper   WarehouseType = "super"   // Central/super warehouse
	WarehouseTypeRegular WarehouseType = "regular" // Regular warehouse
)

// Warehouse represents a storage location.
// It is the aggregate root for warehouse-related operations.
// Stock quantities are not stored here; they live in the inventory context.
type Warehouse struct {
	shared.BaseAggregateRoot
	Code     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string          `gorm:"type:varchar(200);not null"`
	Location string          `gorm:"type:text"`
	Type     WarehouseType   `gorm:"type:varchar(20);not null;default:'regular'"`
	Status   WarehouseStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Capacity int             `gorm:"not null;default:0"`

	// Managers are loaded with the aggregate; assignment mutates through it
	Managers []WarehouseManager `gorm:"foreignKey:WarehouseID;references:ID"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse with required fields
func NewWarehouse(code, name string, warehouseType WarehouseType) (*Warehouse, error) {
	if err := validateWarehouseCode(code); err != nil {
		return nil, err
	}
	if err := validateWarehouseName(name); err != nil {
		return nil, err
	}
	if err := validateWarehouseType(warehouseType); err != nil {
		return nil, err
	}

	warehouse := &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Type:              warehouseType,
		Status:            WarehouseStatusActive,
		Managers:          make([]WarehouseManager, 0),
	}

	warehouse.AddDomainEvent(NewWarehouseCreatedEvent(warehouse))

	return warehouse, nil
}

// Update updates the warehouse's basic information
func (w *Warehouse) Update(name, location string, capacity int) error {
	if err := validateWarehouseName(name); err != nil {
		return err
	}
	if capacity < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Capacity cannot be negative")
	}

	w.Name = name
	w.Location = location
	w.Capacity = capacity
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// AssignManager adds a user to the warehouse's manager set
func (w *Warehouse) AssignManager(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "User ID cannot be empty")
	}
	if w.IsManagedBy(userID) {
		return shared.NewDomainError("ALREADY_EXISTS", "User already manages this warehouse")
	}

	w.Managers = append(w.Managers, NewWarehouseManager(w.ID, userID))
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	w.AddDomainEvent(NewWarehouseManagerAssignedEvent(w, userID))

	return nil
}

// UnassignManager removes a user from the warehouse's manager set
func (w *Warehouse) UnassignManager(userID uuid.UUID) error {
	for i, m := range w.Managers {
		if m.UserID == userID {
			w.Managers = append(w.Managers[:i], w.Managers[i+1:]...)
			w.UpdatedAt = time.Now()
			w.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// IsManagedBy reports whether the given user manages this warehouse
func (w *Warehouse) IsManagedBy(userID uuid.UUID) bool {
	for _, m := range w.Managers {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// HasManagers reports whether any manager is assigned
func (w *Warehouse) HasManagers() bool {
	return len(w.Managers) > 0
}

// ManagerIDs returns the IDs of all assigned managers
func (w *Warehouse) ManagerIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(w.Managers))
	for _, m := range w.Managers {
		ids = append(ids, m.UserID)
	}
	return ids
}

// Activate marks the warehouse as active
func (w *Warehouse) Activate() {
	if w.Status == WarehouseStatusActive {
		return
	}
	w.Status = WarehouseStatusActive
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// Deactivate marks the warehouse as inactive
func (w *Warehouse) Deactivate() {
	if w.Status == WarehouseStatusInactive {
		return
	}
	w.Status = WarehouseStatusInactive
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// IsActive returns true when the warehouse is active
func (w *Warehouse) IsActive() bool {
	return w.Status == WarehouseStatusActive
}

func validateWarehouseCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_INPUT", "Warehouse code is required")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_INPUT", "Warehouse code must be at most 50 characters")
	}
	return nil
}

func validateWarehouseName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Warehouse name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Warehouse name must be at most 200 characters")
	}
	return nil
}

func validateWarehouseType(t WarehouseType) error {
	switch t {
	case WarehouseTypeSuper, WarehouseTypeRegular:
		return nil
	default:
		return shared.NewDomainError("INVALID_INPUT", "Invalid warehouse type")
	}
}
