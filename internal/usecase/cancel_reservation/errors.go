package cancel_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда бронь принадлежит другому пользователю
	ErrAccessDenied = errors.New("cancel_reservation: reservation belongs to another user")

	// ErrInvalidStatus возвращается, когда бронь уже в терминальном статусе
	ErrInvalidStatus = errors.New("cancel_reservation: reservation cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
