package schedule

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByFieldID(ctx context.Context, fieldID int64) (*domain.ScheduleConfig, error)
	Update(ctx context.Context, cfg *domain.ScheduleConfig) error
}

// CourtRepository интерфейс репозитория кортов
type CourtRepository interface {
	ListByFieldID(ctx context.Context, fieldID int64) ([]*domain.Court, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
