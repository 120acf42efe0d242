package mark_notification_read

import "context"

type NotificationService interface {
	MarkRead(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
