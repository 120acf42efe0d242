package pay_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = errors.New("pay_reservation: reservation not found")

	// ErrAccessDenied возвращается, когда бронь принадлежит другому пользователю
	ErrAccessDenied = errors.New("pay_reservation: reservation belongs to another user")

	// ErrNotPayable возвращается, когда бронь не в статусе payment_pending
	ErrNotPayable = errors.New("pay_reservation: reservation is not awaiting payment")

	// ErrWindowExpired возвращается, когда окно оплаты истекло
	ErrWindowExpired = errors.New("pay_reservation: payment window has expired")

	// ErrUnknownMethod возвращается при неизвестном платежном методе
	ErrUnknownMethod = errors.New("pay_reservation: unknown payment method")

	// ErrPaymentFailed возвращается, когда платежный шлюз отклонил платеж
	ErrPaymentFailed = errors.New("pay_reservation: payment processing failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pay_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("pay_reservation: internal error")
)
