package transfer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wims/backend/internal/domain/partner"
	"github.com/wims/backend/internal/domain/shared"
)

// TransferStatus represents the status of a transfer request
type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "PENDING"
	TransferStatusApproved  TransferStatus = "APPROVED"
	TransferStatusInTransit TransferStatus = "IN_TRANSIT"
	TransferStatusCompleted TransferStatus = "COMPLETED"
	TransferStatusDeclined  TransferStatus = "DECLINED"
	TransferStatusCancelled TransferStatus = "CANCELLED"
	TransferStatusFailed    TransferStatus = "FAILED"
)

// IsValid checks if the status is a valid TransferStatus
func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferStatusPending, TransferStatusApproved, TransferStatusInTransit,
		TransferStatusCompleted, TransferStatusDeclined, TransferStatusCancelled,
		TransferStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of TransferStatus
func (s TransferStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transitions
func (s TransferStatus) IsTerminal() bool {
	switch s {
	case TransferStatusCompleted, TransferStatusDeclined, TransferStatusCancelled, TransferStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status.
// Stock moves only on the transition into COMPLETED; every other transition
// is a pure status change.
func (s TransferStatus) CanTransitionTo(target TransferStatus) bool {
	switch s {
	case TransferStatusPending:
		return target == TransferStatusApproved || target == TransferStatusDeclined || target == TransferStatusCancelled
	case TransferStatusApproved:
		return target == TransferStatusInTransit || target == TransferStatusCancelled
	case TransferStatusInTransit:
		return target == TransferStatusCompleted || target == TransferStatusFailed || target == TransferStatusCancelled
	}
	return false
}

// TransferType represents the direction of a transfer between warehouse tiers
type TransferType string

const (
	TransferTypeSuperToRegular   TransferType = "SUPER_TO_REGULAR"
	TransferTypeRegularToRegular TransferType = "REGULAR_TO_REGULAR"
	TransferTypeRegularToSuper   TransferType = "REGULAR_TO_SUPER"
)

// IsValid checks if the transfer type is one of the enumerated values
func (t TransferType) IsValid() bool {
	switch t {
	case TransferTypeSuperToRegular, TransferTypeRegularToRegular, TransferTypeRegularToSuper:
		return true
	}
	return false
}

// String returns the string representation of TransferType
func (t TransferType) String() string {
	return string(t)
}

// Matches reports whether the transfer type agrees with the actual
// warehouse tiers at both ends
func (t TransferType) Matches(from, to partner.WarehouseType) bool {
	switch t {
	case TransferTypeSuperToRegular:
		return from == partner.WarehouseTypeSuper && to == partner.WarehouseTypeRegular
	case TransferTypeRegularToRegular:
		return from == partner.WarehouseTypeRegular && to == partner.WarehouseTypeRegular
	case TransferTypeRegularToSuper:
		return from == partner.WarehouseTypeRegular && to == partner.WarehouseTypeSuper
	}
	return false
}

// TransferItem represents a line item in a transfer request
type TransferItem struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransferRequestID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName       string          `gorm:"type:varchar(200);not null"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Product price at request time
	Amount            decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * UnitPrice
	CreatedAt         time.Time
}

// TableName returns the table name for GORM
func (TransferItem) TableName() string {
	return "transfer_items"
}

// TransferRequest represents a staff-initiated request to move product
// quantities from one warehouse to another.
// It is the aggregate root for the transfer workflow.
type TransferRequest struct {
	shared.BaseAggregateRoot
	FromWarehouseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ToWarehouseID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type            TransferType    `gorm:"type:varchar(30);not null"`
	Status          TransferStatus  `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	RequestedBy     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Note            string          `gorm:"type:text"`
	TotalQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RequestDate     time.Time       `gorm:"type:timestamptz;not null"`
	ApprovedAt      *time.Time
	ShippedAt       *time.Time
	CompletedAt     *time.Time
	DeclinedAt      *time.Time
	CancelledAt     *time.Time
	FailedAt        *time.Time
	FailureReason   string `gorm:"type:varchar(255)"`

	Items []TransferItem `gorm:"foreignKey:TransferRequestID;references:ID"`
}

// TableName returns the table name for GORM
func (TransferRequest) TableName() string {
	return "transfer_requests"
}

// NewTransferRequest creates a new transfer request in PENDING status
func NewTransferRequest(fromWarehouseID, toWarehouseID uuid.UUID, transferType TransferType, requestedBy uuid.UUID, note string) (*TransferRequest, error) {
	if fromWarehouseID == uuid.Nil || toWarehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Both warehouse IDs are required")
	}
	if fromWarehouseID == toWarehouseID {
		return nil, shared.NewDomainError("INVALID_INPUT", "Source and destination warehouses must differ")
	}
	if !transferType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid transfer type")
	}
	if requestedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Requester is required")
	}

	request := &TransferRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FromWarehouseID:   fromWarehouseID,
		ToWarehouseID:     toWarehouseID,
		Type:              transferType,
		Status:            TransferStatusPending,
		RequestedBy:       requestedBy,
		Note:              strings.TrimSpace(note),
		TotalQuantity:     decimal.Zero,
		TotalPrice:        decimal.Zero,
		RequestDate:       time.Now(),
		Items:             make([]TransferItem, 0),
	}

	return request, nil
}

// AddItem appends a line item to a pending request
func (r *TransferRequest) AddItem(productID uuid.UUID, productName string, quantity, unitPrice decimal.Decimal) error {
	if r.Status != TransferStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Items can only be added while the request is pending")
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Unit price cannot be negative")
	}
	for _, item := range r.Items {
		if item.ProductID == productID {
			return shared.NewDomainError("INVALID_INPUT", "Duplicate product in transfer request")
		}
	}

	now := time.Now()
	r.Items = append(r.Items, TransferItem{
		ID:                uuid.New(),
		TransferRequestID: r.ID,
		ProductID:         productID,
		ProductName:       productName,
		Quantity:          quantity,
		UnitPrice:         unitPrice,
		Amount:            quantity.Mul(unitPrice),
		CreatedAt:         now,
	})
	r.recalculateTotals()
	r.UpdatedAt = now

	return nil
}

// Submit finalizes creation; a request must carry at least one item
func (r *TransferRequest) Submit() error {
	if len(r.Items) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Transfer request must contain at least one item")
	}

	r.AddDomainEvent(NewTransferRequestedEvent(r))

	return nil
}

// Approve moves the request from PENDING to APPROVED
func (r *TransferRequest) Approve() error {
	if err := r.transition(TransferStatusApproved); err != nil {
		return err
	}
	now := time.Now()
	r.ApprovedAt = &now

	r.AddDomainEvent(NewTransferApprovedEvent(r))

	return nil
}

// Decline moves the request from PENDING to the terminal DECLINED status
func (r *TransferRequest) Decline(reason string) error {
	if err := r.transition(TransferStatusDeclined); err != nil {
		return err
	}
	now := time.Now()
	r.DeclinedAt = &now
	if reason != "" {
		r.Note = reason
	}

	r.AddDomainEvent(NewTransferDeclinedEvent(r))

	return nil
}

// Ship moves the request from APPROVED to IN_TRANSIT
func (r *TransferRequest) Ship() error {
	if err := r.transition(TransferStatusInTransit); err != nil {
		return err
	}
	now := time.Now()
	r.ShippedAt = &now

	r.AddDomainEvent(NewTransferShippedEvent(r))

	return nil
}

// Complete moves the request from IN_TRANSIT to the terminal COMPLETED
// status. The caller moves stock in the same unit of work.
func (r *TransferRequest) Complete() error {
	if err := r.transition(TransferStatusCompleted); err != nil {
		return err
	}
	now := time.Now()
	r.CompletedAt = &now

	r.AddDomainEvent(NewTransferCompletedEvent(r))

	return nil
}

// Cancel moves the request into the terminal CANCELLED status.
// Allowed from PENDING, APPROVED and IN_TRANSIT.
func (r *TransferRequest) Cancel(reason string) error {
	if err := r.transition(TransferStatusCancelled); err != nil {
		return err
	}
	now := time.Now()
	r.CancelledAt = &now
	if reason != "" {
		r.Note = reason
	}

	r.AddDomainEvent(NewTransferCancelledEvent(r))

	return nil
}

// MarkFailed records an execution failure during delivery
func (r *TransferRequest) MarkFailed(reason string) error {
	if err := r.transition(TransferStatusFailed); err != nil {
		return err
	}
	now := time.Now()
	r.FailedAt = &now
	r.FailureReason = reason

	r.AddDomainEvent(NewTransferFailedEvent(r, reason))

	return nil
}

func (r *TransferRequest) transition(target TransferStatus) error {
	if !r.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move transfer from %s to %s", r.Status, target))
	}
	r.Status = target
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

func (r *TransferRequest) recalculateTotals() {
	quantity := decimal.Zero
	price := decimal.Zero
	for _, item := range r.Items {
		quantity = quantity.Add(item.Quantity)
		price = price.Add(item.Amount)
	}
	r.TotalQuantity = quantity
	r.TotalPrice = price
}

// ItemCount returns the number of line items
func (r *TransferRequest) ItemCount() int {
	return len(r.Items)
}

// IsPending returns true when the request awaits a decision
func (r *TransferRequest) IsPending() bool {
	return r.Status == TransferStatusPending
}

// IsCompleted returns true when stock has been moved
func (r *TransferRequest) IsCompleted() bool {
	return r.Status == TransferStatusCompleted
}
