package domain

import "time"

// PaymentWindow платёжное окно после одобрения бронирования.
// Фиксированные 30 минут от approved_at, вычисляется один раз и не пересчитывается.
const PaymentWindow = 30 * time.Minute

// Business validation constants
const (
	MinDayHour = 0
	MaxDayHour = 23

	MaxStatusMessageLength = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ClaimingStatuses список статусов, удерживающих часы корта.
// Используется при проверке конфликтов бронирования.
var ClaimingStatuses = []ReservationStatus{
	StatusRequested,
	StatusPaymentPending,
	StatusPaid,
}

// TerminalStatuses список терминальных статусов, из которых переходы запрещены
var TerminalStatuses = []ReservationStatus{
	StatusPaid,
	StatusCancelled,
}
