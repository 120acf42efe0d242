package expire_reservation

// Request модель запроса на истечение брони по таймауту оплаты
type Request struct {
	ReservationID int64 // ID брони
}

// Response модель ответа с истекшей бронью
type Response struct {
	ID            int64  // ID брони
	UserID        int64  // ID пользователя
	Status        string // Новый статус (cancelled)
	StatusMessage string // Служебное сообщение
}
