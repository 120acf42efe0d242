package pay_reservation

import "time"

// Request модель запроса на оплату брони
type Request struct {
	ReservationID int64  // ID брони
	UserID        int64  // ID пользователя, выполняющего оплату
	Method        string // Платежный метод (DANA, GOPAY, OVO)
}

// Response модель ответа с оплаченной бронью
type Response struct {
	ID          int64     // ID брони
	UserID      int64     // ID пользователя
	Status      string    // Новый статус (paid)
	Amount      float64   // Списанная сумма
	Method      string    // Платежный метод
	ProcessedAt time.Time // Время обработки платежа
}
