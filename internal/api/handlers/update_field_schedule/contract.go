package update_field_schedule

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateSchedule(ctx context.Context, fieldID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
