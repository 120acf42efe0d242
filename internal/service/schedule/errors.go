package schedule

import "errors"

var (
	// ErrFieldNotFound возвращается, когда площадка не найдена
	ErrFieldNotFound = errors.New("field not found")

	// ErrInvalidSchedule возвращается при некорректной конфигурации расписания
	ErrInvalidSchedule = errors.New("invalid schedule configuration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
