package pay_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/events"
	"github.com/m04kA/SMC-ReservationService/internal/payments"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	MarkPaid(ctx context.Context, id int64, approvedAfter time.Time) (*domain.Reservation, error)
}

// PaymentRepository интерфейс журнала платежей
type PaymentRepository interface {
	Create(ctx context.Context, record *domain.PaymentRecord) error
}

// ProcessorRegistry интерфейс реестра платежных методов
type ProcessorRegistry interface {
	Get(method string) (payments.Processor, error)
}

// ExpirationScheduler интерфейс планировщика истечения оплат
type ExpirationScheduler interface {
	Deregister(reservationID int64)
}

// Expirer интерфейс принудительного истечения просроченной брони
type Expirer interface {
	Expire(ctx context.Context, reservationID int64) error
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
