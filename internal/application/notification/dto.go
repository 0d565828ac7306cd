package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/notification"
)

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	Message    string     `json:"message"`
	TransferID *uuid.UUID `json:"transfer_id,omitempty"`
	IsRead     bool       `json:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// UnreadCountResponse carries the unread notification count for a user
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// ToNotificationResponse converts a notification to its response shape
func ToNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		Type:       string(n.Type),
		Message:    n.Message,
		TransferID: n.TransferID,
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}
}
