package approve_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("approve_reservation: reservation not found")

	// ErrInvalidStatus возвращается, когда бронь не в статусе requested
	ErrInvalidStatus = errors.New("approve_reservation: reservation is not awaiting approval")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_reservation: internal error")
)
