package list_notifications

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/notifications/models"
)

type NotificationService interface {
	ListUserNotifications(ctx context.Context, userID int64, onlyUnread bool, refID *int64) (*models.NotificationListResponse, error)
	ListOperationsNotifications(ctx context.Context, onlyUnread bool, refID *int64) (*models.NotificationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
