package expire_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("expire_reservation: reservation not found")

	// ErrAlreadyResolved возвращается, когда бронь уже покинула payment_pending
	ErrAlreadyResolved = errors.New("expire_reservation: reservation already resolved")

	// ErrNotDue возвращается, когда окно оплаты еще не истекло
	ErrNotDue = errors.New("expire_reservation: payment window has not elapsed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("expire_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("expire_reservation: internal error")
)
