package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// StockItem represents the stock of a product at a specific warehouse.
// It is the single source of truth for quantities: products and warehouses
// carry none. The composite identifier is WarehouseID + ProductID.
type StockItem struct {
	shared.BaseAggregateRoot
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_item_warehouse_product,priority:1"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_item_warehouse_product,priority:2"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem creates a new stock item for a warehouse-product combination
func NewStockItem(warehouseID, productID uuid.UUID) (*StockItem, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID cannot be empty")
	}

	return &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		WarehouseID:       warehouseID,
		ProductID:         productID,
		Quantity:          decimal.Zero,
	}, nil
}

// Increase adds a positive quantity to the stock
func (i *StockItem) Increase(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}

	before := i.Quantity
	i.Quantity = i.Quantity.Add(quantity)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockIncreasedEvent(i, quantity, before))

	return nil
}

// Decrease removes a positive quantity from the stock.
// Quantity never goes negative; an insufficient balance fails the call.
func (i *StockItem) Decrease(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if i.Quantity.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	before := i.Quantity
	i.Quantity = i.Quantity.Sub(quantity)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockDecreasedEvent(i, quantity, before))

	return nil
}

// HasAtLeast reports whether the stock covers the requested quantity
func (i *StockItem) HasAtLeast(quantity decimal.Decimal) bool {
	return i.Quantity.GreaterThanOrEqual(quantity)
}
