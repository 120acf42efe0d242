package approve_reservation

import "time"

// Request модель запроса на подтверждение брони оператором
type Request struct {
	ReservationID int64 // ID брони
}

// Response модель ответа с подтвержденной бронью
type Response struct {
	ID              int64     // ID брони
	UserID          int64     // ID пользователя
	CourtID         int64     // ID корта
	Status          string    // Новый статус (payment_pending)
	ApprovedAt      time.Time // Время подтверждения
	PaymentDeadline time.Time // Крайний срок оплаты
}
