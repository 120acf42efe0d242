package approve_reservation

import (
	"context"

	approveReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/approve_reservation"
)

type ApproveReservationUseCase interface {
	Execute(ctx context.Context, req *approveReservation.Request) (*approveReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
