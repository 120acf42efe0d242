package approve_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/events"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Approve(ctx context.Context, id int64, approvedAt time.Time) (*domain.Reservation, error)
}

// ExpirationScheduler интерфейс планировщика истечения оплат
type ExpirationScheduler interface {
	Register(reservationID int64, deadline time.Time)
}

// EventPublisher интерфейс для публикации событий переходов
type EventPublisher interface {
	Publish(ev events.TransitionEvent)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
