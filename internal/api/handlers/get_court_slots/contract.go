package get_court_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/service/availability/models"
)

type AvailabilityService interface {
	GetDaySlots(ctx context.Context, courtID int64, date time.Time) (*models.DaySlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
