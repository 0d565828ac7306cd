package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/shared"
)

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	// FindByID finds a notification by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindByRecipient finds notifications for a recipient, newest first
	FindByRecipient(ctx context.Context, recipientID uuid.UUID, filter shared.Filter) ([]Notification, error)

	// CountUnread counts unread notifications for a recipient
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error)

	// CountByRecipient counts all notifications for a recipient
	CountByRecipient(ctx context.Context, recipientID uuid.UUID) (int64, error)

	// Save creates or updates a notification
	Save(ctx context.Context, n *Notification) error

	// SaveBatch creates multiple notifications
	SaveBatch(ctx context.Context, ns []*Notification) error

	// MarkAllRead marks every unread notification of the recipient as read
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
}
