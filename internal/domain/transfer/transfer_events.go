package transfer

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeTransferRequest = "TransferRequest"

// Event type constants
const (
	EventTypeTransferRequested = "TransferRequested"
	EventTypeTransferApproved  = "TransferApproved"
	EventTypeTransferDeclined  = "TransferDeclined"
	EventTypeTransferShipped   = "TransferShipped"
	EventTypeTransferCompleted = "TransferCompleted"
	EventTypeTransferCancelled = "TransferCancelled"
	EventTypeTransferFailed    = "TransferFailed"
)

// TransferEvent carries the fields shared by all transfer lifecycle events
type TransferEvent struct {
	shared.BaseDomainEvent
	TransferID      uuid.UUID       `json:"transfer_id"`
	FromWarehouseID uuid.UUID       `json:"from_warehouse_id"`
	ToWarehouseID   uuid.UUID       `json:"to_warehouse_id"`
	RequestedBy     uuid.UUID       `json:"requested_by"`
	Status          TransferStatus  `json:"status"`
	TotalQuantity   decimal.Decimal `json:"total_quantity"`
	Reason          string          `json:"reason,omitempty"`
}

func newTransferEvent(eventType string, r *TransferRequest, reason string) *TransferEvent {
	return &TransferEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeTransferRequest, r.ID),
		TransferID:      r.ID,
		FromWarehouseID: r.FromWarehouseID,
		ToWarehouseID:   r.ToWarehouseID,
		RequestedBy:     r.RequestedBy,
		Status:          r.Status,
		TotalQuantity:   r.TotalQuantity,
		Reason:          reason,
	}
}

// NewTransferRequestedEvent is published when a request is created
func NewTransferRequestedEvent(r *TransferRequest) *TransferEvent {
	return newTransferEvent(EventTypeTransferRequested, r, "")
}

// NewTransferApprovedEvent is published when a request is approved
func NewTransferApprovedEvent(r *TransferRequest) *TransferEvent {
	return newTransferEvent(EventTypeTransferApproved, r, "")
}

// NewTransferDeclinedEvent is published when a request is declined
func NewTransferDeclinedEvent(r *TransferRequest) *TransferEvent {
	return newTransferEvent(EventTypeTransferDeclined, r, "")
}

// NewTransferShippedEvent is published when goods leave the source warehouse
func NewTransferShippedEvent(r *TransferRequest) *TransferEvent {
	return newTransferEvent(EventTypeTransferShipped, r, "")
}

// NewTransferCompletedEvent is published after stock has moved
func NewTransferCompletedEvent(r *TransferRequest) *TransferEvent {
	return newTransferEvent(EventTypeTransferCompleted, r, "")
}

// NewTransferCancelledEvent is published when a request is cancelled
func NewTransferCancelledEvent(r *TransferRequest) *TransferEvent {
	return newTransferEvent(EventTypeTransferCancelled, r, "")
}

// NewTransferFailedEvent is published when delivery execution fails
func NewTransferFailedEvent(r *TransferRequest, reason string) *TransferEvent {
	return newTransferEvent(EventTypeTransferFailed, r, reason)
}
