package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
)

// NotificationType classifies what a notification is about
type NotificationType string

const (
	TypeTransferRequested = NotificationType("TRANSFER_REQUESTED")
	TypeTransferApproved  = NotificationType("TRANSFER_APPROVED")
	TypeTransferDeclined  = NotificationType("TRANSFER_DECLINED")
	TypeTransferShipped   = NotificationType("TRANSFER_SHIPPED")
	TypeTransferCompleted = NotificationType("TRANSFER_COMPLETED")
	TypeTransferCancelled = NotificationType("TRANSFER_CANCELLED")
	TypeTransferFailed    = NotificationType("TRANSFER_FAILED")
	TypeSystem            = NotificationType("SYSTEM")
)

// Notification represents a message delivered to a user's inbox.
// Creation is fire-and-forget from the caller's perspective; a delivery
// failure never fails the operation that triggered it.
type Notification struct {
	shared.BaseEntity
	RecipientID uuid.UUID        `gorm:"type:uuid;not null;index:idx_notification_recipient"`
	Type        NotificationType `gorm:"type:varchar(30);not null"`
	Message     string           `gorm:"type:text;not null"`
	TransferID  *uuid.UUID       `gorm:"type:uuid;index"`
	IsRead      bool             `gorm:"not null;default:false;index:idx_notification_recipient"`
	ReadAt      *time.Time
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates a new unread notification
func NewNotification(recipientID uuid.UUID, notificationType NotificationType, message string) (*Notification, error) {
	if recipientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Recipient is required")
	}
	if strings.TrimSpace(message) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Message is required")
	}

	return &Notification{
		BaseEntity:  shared.NewBaseEntity(),
		RecipientID: recipientID,
		Type:        notificationType,
		Message:     message,
		IsRead:      false,
	}, nil
}

// WithTransfer links the notification back to a transfer request
func (n *Notification) WithTransfer(transferID uuid.UUID) *Notification {
	n.TransferID = &transferID
	return n
}

// MarkRead marks the notification as read; reading twice is a no-op
func (n *Notification) MarkRead() {
	if n.IsRead {
		return
	}
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	n.UpdatedAt = now
}
