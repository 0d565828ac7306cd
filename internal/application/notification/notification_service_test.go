package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wims/backend/internal/domain/notification"
	"github.com/wims/backend/internal/domain/shared"
)

func TestNotificationServiceMarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("marks own notification as read", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo)

		recipientID := uuid.New()
		n, err := notification.NewNotification(recipientID, notification.TypeTransferApproved, "Transfer approved")
		require.NoError(t, err)

		repo.On("FindByID", ctx, n.ID).Return(n, nil)
		repo.On("Save", ctx, n).Return(nil)

		resp, err := service.MarkRead(ctx, n.ID, recipientID)

		require.NoError(t, err)
		assert.True(t, resp.IsRead)
		assert.NotNil(t, resp.ReadAt)
		repo.AssertExpectations(t)
	})

	t.Run("forbids reading another user's notification", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		service := NewNotificationService(repo)

		n, err := notification.NewNotification(uuid.New(), notification.TypeSystem, "maintenance window")
		require.NoError(t, err)

		repo.On("FindByID", ctx, n.ID).Return(n, nil)

		_, err = service.MarkRead(ctx, n.ID, uuid.New())

		assert.ErrorIs(t, err, shared.ErrForbidden)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestNotificationServiceListByRecipient(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepository)
	service := NewNotificationService(repo)

	recipientID := uuid.New()
	n, err := notification.NewNotification(recipientID, notification.TypeTransferShipped, "Transfer in transit")
	require.NoError(t, err)

	filter := shared.DefaultFilter()
	repo.On("FindByRecipient", ctx, recipientID, filter).Return([]notification.Notification{*n}, nil)
	repo.On("CountByRecipient", ctx, recipientID).Return(int64(1), nil)

	result, err := service.ListByRecipient(ctx, recipientID, filter)

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "TRANSFER_SHIPPED", result.Items[0].Type)
	assert.False(t, result.Items[0].IsRead)
}

func TestNotificationServiceUnreadCount(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepository)
	service := NewNotificationService(repo)

	recipientID := uuid.New()
	repo.On("CountUnread", ctx, recipientID).Return(int64(3), nil)

	resp, err := service.UnreadCount(ctx, recipientID)

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Count)
}
