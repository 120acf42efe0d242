package reject_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("reject_reservation: reservation not found")

	// ErrEmptyReason возвращается при пустой причине отклонения
	ErrEmptyReason = errors.New("reject_reservation: rejection reason is required")

	// ErrInvalidStatus возвращается, когда бронь не в статусе requested
	ErrInvalidStatus = errors.New("reject_reservation: reservation is not awaiting approval")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reject_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reject_reservation: internal error")
)
