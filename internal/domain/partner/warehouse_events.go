package partner

import (
	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeWarehouse = "Warehouse"

// Event type constants
const (
	EventTypeWarehouseCreated         = "WarehouseCreated"
	EventTypeWarehouseManagerAssigned = "WarehouseManagerAssigned"
)

// WarehouseCreatedEvent is published when a new warehouse is created
type WarehouseCreatedEvent struct {
	shared.BaseDomainEvent
	WarehouseID uuid.UUID     `json:"warehouse_id"`
	Code        string        `json:"code"`
	Name        string        `json:"name"`
	Type        WarehouseType `json:"warehouse_type"`
}

// NewWarehouseCreatedEvent creates a new WarehouseCreatedEvent
func NewWarehouseCreatedEvent(warehouse *Warehouse) *WarehouseCreatedEvent {
	return &WarehouseCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWarehouseCreated, AggregateTypeWarehouse, warehouse.ID),
		WarehouseID:     warehouse.ID,
		Code:            warehouse.Code,
		Name:            warehouse.Name,
		Type:            warehouse.Type,
	}
}

// WarehouseManagerAssignedEvent is published when a manager is assigned
type WarehouseManagerAssignedEvent struct {
	shared.BaseDomainEvent
	WarehouseID uuid.UUID `json:"warehouse_id"`
	UserID      uuid.UUID `json:"user_id"`
}

// NewWarehouseManagerAssignedEvent creates a new WarehouseManagerAssignedEvent
func NewWarehouseManagerAssignedEvent(warehouse *Warehouse, userID uuid.UUID) *WarehouseManagerAssignedEvent {
	return &WarehouseManagerAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeWarehouseManagerAssigned, AggregateTypeWarehouse, warehouse.ID),
		WarehouseID:     warehouse.ID,
		UserID:          userID,
	}
}
