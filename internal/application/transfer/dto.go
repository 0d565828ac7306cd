package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/transfer"
)

// TransferItemRequest is one line of a transfer creation request
type TransferItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateTransferRequest represents a request to create a transfer
type CreateTransferRequest struct {
	FromWarehouseID uuid.UUID             `json:"from_warehouse_id" binding:"required"`
	ToWarehouseID   uuid.UUID             `json:"to_warehouse_id" binding:"required"`
	TransferType    string                `json:"transfer_type" binding:"required,oneof=SUPER_TO_REGULAR REGULAR_TO_REGULAR REGULAR_TO_SUPER"`
	Items           []TransferItemRequest `json:"items" binding:"required,min=1,dive"`
	Note            string                `json:"note" binding:"max=1000"`
}

// ReasonRequest carries an optional reason for decline/cancel transitions
type ReasonRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

// TransferItemResponse represents a transfer line item in API responses
type TransferItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// TransferResponse represents a transfer request in API responses
type TransferResponse struct {
	ID              uuid.UUID              `json:"id"`
	FromWarehouseID uuid.UUID              `json:"from_warehouse_id"`
	ToWarehouseID   uuid.UUID              `json:"to_warehouse_id"`
	TransferType    string                 `json:"transfer_type"`
	Status          string                 `json:"status"`
	RequestedBy     uuid.UUID              `json:"requested_by"`
	Note            string                 `json:"note,omitempty"`
	TotalQuantity   decimal.Decimal        `json:"total_quantity"`
	TotalPrice      decimal.Decimal        `json:"total_price"`
	RequestDate     time.Time              `json:"request_date"`
	ApprovedAt      *time.Time             `json:"approved_at,omitempty"`
	ShippedAt       *time.Time             `json:"shipped_at,omitempty"`
	CompletedAt     *time.Time             `json:"completed_at,omitempty"`
	DeclinedAt      *time.Time             `json:"declined_at,omitempty"`
	CancelledAt     *time.Time             `json:"cancelled_at,omitempty"`
	FailedAt        *time.Time             `json:"failed_at,omitempty"`
	FailureReason   string                 `json:"failure_reason,omitempty"`
	Items           []TransferItemResponse `json:"items"`
	Version         int                    `json:"version"`
}

// ToTransferResponse converts a transfer aggregate to its response shape
func ToTransferResponse(r *transfer.TransferRequest) TransferResponse {
	items := make([]TransferItemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, TransferItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		})
	}

	return TransferResponse{
		ID:              r.ID,
		FromWarehouseID: r.FromWarehouseID,
		ToWarehouseID:   r.ToWarehouseID,
		TransferType:    r.Type.String(),
		Status:          r.Status.String(),
		RequestedBy:     r.RequestedBy,
		Note:            r.Note,
		TotalQuantity:   r.TotalQuantity,
		TotalPrice:      r.TotalPrice,
		RequestDate:     r.RequestDate,
		ApprovedAt:      r.ApprovedAt,
		ShippedAt:       r.ShippedAt,
		CompletedAt:     r.CompletedAt,
		DeclinedAt:      r.DeclinedAt,
		CancelledAt:     r.CancelledAt,
		FailedAt:        r.FailedAt,
		FailureReason:   r.FailureReason,
		Items:           items,
		Version:         r.GetVersion(),
	}
}
