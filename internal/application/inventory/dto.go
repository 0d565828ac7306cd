package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/inventory"
)

// ReceiveStockRequest represents inbound stock arriving at a warehouse
type ReceiveStockRequest struct {
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Reason      string          `json:"reason" binding:"max=255"`
}

// AdjustStockRequest represents a manual stock adjustment.
// Quantity is signed: positive adds stock, negative removes it.
type AdjustStockRequest struct {
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Reason      string          `json:"reason" binding:"required,max=255"`
}

// StockItemResponse represents a stock item in API responses
type StockItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ToStockItemResponse converts a stock item to its response shape
func ToStockItemResponse(item *inventory.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:          item.ID,
		WarehouseID: item.WarehouseID,
		ProductID:   item.ProductID,
		Quantity:    item.Quantity,
		UpdatedAt:   item.UpdatedAt,
		Version:     item.GetVersion(),
	}
}

// WarehouseSummaryResponse represents a warehouse's aggregated stock
type WarehouseSummaryResponse struct {
	WarehouseID   uuid.UUID       `json:"warehouse_id"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// TransactionResponse represents a transaction log record in API responses
type TransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	WarehouseID     uuid.UUID       `json:"warehouse_id"`
	ProductID       uuid.UUID       `json:"product_id"`
	TransactionType string          `json:"transaction_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalValue      decimal.Decimal `json:"total_value"`
	BalanceBefore   decimal.Decimal `json:"balance_before"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	SourceType      string          `json:"source_type"`
	SourceID        string          `json:"source_id"`
	Reason          string          `json:"reason,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
}

// ToTransactionResponse converts a transaction record to its response shape
func ToTransactionResponse(tx *inventory.InventoryTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		WarehouseID:     tx.WarehouseID,
		ProductID:       tx.ProductID,
		TransactionType: tx.TransactionType.String(),
		Quantity:        tx.Quantity,
		UnitPrice:       tx.UnitPrice,
		TotalValue:      tx.TotalValue,
		BalanceBefore:   tx.BalanceBefore,
		BalanceAfter:    tx.BalanceAfter,
		SourceType:      tx.SourceType.String(),
		SourceID:        tx.SourceID,
		Reason:          tx.Reason,
		TransactionDate: tx.TransactionDate,
	}
}
