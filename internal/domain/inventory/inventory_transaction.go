package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// TransactionType represents the type of inventory transaction
type TransactionType string

const (
	// TransactionTypeInbound represents stock coming into inventory (receiving)
	TransactionTypeInbound TransactionType = "INBOUND"
	// TransactionTypeOutbound represents stock leaving inventory
	TransactionTypeOutbound TransactionType = "OUTBOUND"
	// TransactionTypeAdjustmentIncrease represents positive stock adjustment
	TransactionTypeAdjustmentIncrease TransactionType = "ADJUSTMENT_INCREASE"
	// TransactionTypeAdjustmentDecrease represents negative stock adjustment
	TransactionTypeAdjustmentDecrease TransactionType = "ADJUSTMENT_DECREASE"
	// TransactionTypeTransferIn represents stock transferred in from another warehouse
	TransactionTypeTransferIn TransactionType = "TRANSFER_IN"
	// TransactionTypeTransferOut represents stock transferred out to another warehouse
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
)

// String returns the string representation of TransactionType
func (t TransactionType) String() string {
	return string(t)
}

// IsValid returns true if the transaction type is valid
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeInbound,
		TransactionTypeOutbound,
		TransactionTypeAdjustmentIncrease,
		TransactionTypeAdjustmentDecrease,
		TransactionTypeTransferIn,
		TransactionTypeTransferOut:
		return true
	}
	return false
}

// IsIncrease returns true if this transaction type increases stock
func (t TransactionType) IsIncrease() bool {
	switch t {
	case TransactionTypeInbound,
		TransactionTypeAdjustmentIncrease,
		TransactionTypeTransferIn:
		return true
	}
	return false
}

// IsDecrease returns true if this transaction type decreases stock
func (t TransactionType) IsDecrease() bool {
	switch t {
	case TransactionTypeOutbound,
		TransactionTypeAdjustmentDecrease,
		TransactionTypeTransferOut:
		return true
	}
	return false
}

// SourceType represents the source document type for a transaction
type SourceType string

const (
	// SourceTypeTransfer is an inter-warehouse transfer request
	SourceTypeTransfer SourceType = "TRANSFER"
	// SourceTypeReceiving is inbound stock receiving
	SourceTypeReceiving SourceType = "RECEIVING"
	// SourceTypeManualAdjustment is a manual adjustment
	SourceTypeManualAdjustment SourceType = "MANUAL_ADJUSTMENT"
	// SourceTypeInitialStock is initial stock setup
	SourceTypeInitialStock SourceType = "INITIAL_STOCK"
)

// String returns the string representation of SourceType
func (s SourceType) String() string {
	return string(s)
}

// IsValid returns true if the source type is valid
func (s SourceType) IsValid() bool {
	switch s {
	case SourceTypeTransfer,
		SourceTypeReceiving,
		SourceTypeManualAdjustment,
		SourceTypeInitialStock:
		return true
	}
	return false
}

// InventoryTransaction represents an immutable record of a stock movement.
// Once created, transactions cannot be modified; corrections are new transactions.
// The report aggregations read exclusively from this log.
type InventoryTransaction struct {
	shared.BaseEntity
	StockItemID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_inv_tx_item"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_inv_tx_warehouse_time,priority:1"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_inv_tx_product"`
	TransactionType TransactionType `gorm:"type:varchar(30);not null;index:idx_inv_tx_type"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`       // Always positive, direction determined by type
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`       // Price per unit at time of transaction
	TotalValue      decimal.Decimal `gorm:"type:decimal(18,4);not null"`       // Quantity * UnitPrice
	BalanceBefore   decimal.Decimal `gorm:"type:decimal(18,4);not null"`       // Stock quantity before transaction
	BalanceAfter    decimal.Decimal `gorm:"type:decimal(18,4);not null"`       // Stock quantity after transaction
	SourceType      SourceType      `gorm:"type:varchar(30);not null;index:idx_inv_tx_source"`
	SourceID        string          `gorm:"type:varchar(50);not null;index:idx_inv_tx_source"`
	Reason          string          `gorm:"type:varchar(255)"`
	OperatorID      *uuid.UUID      `gorm:"type:uuid"`
	TransactionDate time.Time       `gorm:"type:timestamptz;not null;index:idx_inv_tx_warehouse_time,priority:2"`
}

// TableName returns the table name for GORM
func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

// NewInventoryTransaction creates a new inventory transaction
func NewInventoryTransaction(
	stockItemID uuid.UUID,
	warehouseID uuid.UUID,
	productID uuid.UUID,
	txType TransactionType,
	quantity decimal.Decimal,
	unitPrice decimal.Decimal,
	balanceBefore decimal.Decimal,
	balanceAfter decimal.Decimal,
	sourceType SourceType,
	sourceID string,
) (*InventoryTransaction, error) {
	if stockItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Stock item ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product ID cannot be empty")
	}
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid transaction type")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid source type")
	}
	if sourceID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Source ID cannot be empty")
	}

	return &InventoryTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		StockItemID:     stockItemID,
		WarehouseID:     warehouseID,
		ProductID:       productID,
		TransactionType: txType,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		TotalValue:      quantity.Mul(unitPrice),
		BalanceBefore:   balanceBefore,
		BalanceAfter:    balanceAfter,
		SourceType:      sourceType,
		SourceID:        sourceID,
		TransactionDate: time.Now(),
	}, nil
}

// WithOperator sets the operator for the transaction
func (t *InventoryTransaction) WithOperator(operatorID uuid.UUID) *InventoryTransaction {
	t.OperatorID = &operatorID
	return t
}

// WithReason sets the reason for the transaction
func (t *InventoryTransaction) WithReason(reason string) *InventoryTransaction {
	t.Reason = reason
	return t
}

// SignedQuantity returns the quantity with the direction applied
func (t *InventoryTransaction) SignedQuantity() decimal.Decimal {
	if t.TransactionType.IsDecrease() {
		return t.Quantity.Neg()
	}
	return t.Quantity
}
