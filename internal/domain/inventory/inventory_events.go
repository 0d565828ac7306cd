package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeStockItem = "StockItem"

// Event type constants
const (
	EventTypeStockIncreased = "StockIncreased"
	EventTypeStockDecreased = "StockDecreased"
)

// StockIncreasedEvent is published when stock is added at a warehouse
type StockIncreasedEvent struct {
	shared.BaseDomainEvent
	StockItemID uuid.UUID       `json:"stock_item_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Before      decimal.Decimal `json:"before"`
	After       decimal.Decimal `json:"after"`
}

// NewStockIncreasedEvent creates a new StockIncreasedEvent
func NewStockIncreasedEvent(item *StockItem, quantity, before decimal.Decimal) *StockIncreasedEvent {
	return &StockIncreasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockIncreased, AggregateTypeStockItem, item.ID),
		StockItemID:     item.ID,
		WarehouseID:     item.WarehouseID,
		ProductID:       item.ProductID,
		Quantity:        quantity,
		Before:          before,
		After:           item.Quantity,
	}
}

// StockDecreasedEvent is published when stock is removed at a warehouse
type StockDecreasedEvent struct {
	shared.BaseDomainEvent
	StockItemID uuid.UUID       `json:"stock_item_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Before      decimal.Decimal `json:"before"`
	After       decimal.Decimal `json:"after"`
}

// NewStockDecreasedEvent creates a new StockDecreasedEvent
func NewStockDecreasedEvent(item *StockItem, quantity, before decimal.Decimal) *StockDecreasedEvent {
	return &StockDecreasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDecreased, AggregateTypeStockItem, item.ID),
		StockItemID:     item.ID,
		WarehouseID:     item.WarehouseID,
		ProductID:       item.ProductID,
		Quantity:        quantity,
		Before:          before,
		After:           item.Quantity,
	}
}
