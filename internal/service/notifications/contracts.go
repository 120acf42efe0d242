package notifications

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	notificationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/notification"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	List(ctx context.Context, filter notificationRepo.Filter) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
