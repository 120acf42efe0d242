package create_reservation

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("create_reservation: court not found")

	// ErrInvalidDate возвращается при дате брони в прошлом
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrDateClosed возвращается, когда площадка закрыта в указанную дату
	ErrDateClosed = errors.New("create_reservation: field is closed on this date")

	// ErrHourUnavailable возвращается, когда час вне рабочих часов или приходится на перерыв
	ErrHourUnavailable = errors.New("create_reservation: hour is not bookable")

	// ErrSlotConflict возвращается, когда хотя бы один час уже занят активной бронью
	ErrSlotConflict = errors.New("create_reservation: slot is already claimed")

	// ErrPriceMismatch возвращается, когда цена клиента расходится с серверной
	ErrPriceMismatch = errors.New("create_reservation: total price does not match server price")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
