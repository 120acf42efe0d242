package reservations

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByCourtAndDate(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
