package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/wims/backend/internal/domain/notification"
	"github.com/wims/backend/internal/domain/shared"
)

// NotificationService handles a user's notification inbox
type NotificationService struct {
	notificationRepo notification.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo notification.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListByRecipient retrieves a recipient's notifications, newest first
func (s *NotificationService) ListByRecipient(ctx context.Context, recipientID uuid.UUID, filter shared.Filter) (*shared.Paginated[NotificationResponse], error) {
	notifications, err := s.notificationRepo.FindByRecipient(ctx, recipientID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.notificationRepo.CountByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	responses := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, ToNotificationResponse(&notifications[i]))
	}

	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UnreadCount returns the recipient's unread notification count
func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (*UnreadCountResponse, error) {
	count, err := s.notificationRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{Count: count}, nil
}

// MarkRead marks one notification as read. Only the recipient may read
// their own notifications.
func (s *NotificationService) MarkRead(ctx context.Context, id, recipientID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != recipientID {
		return nil, shared.ErrForbidden
	}

	n.MarkRead()
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return nil, err
	}

	response := ToNotificationResponse(n)
	return &response, nil
}

// MarkAllRead marks every unread notification of the recipient as read
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	return s.notificationRepo.MarkAllRead(ctx, recipientID)
}
