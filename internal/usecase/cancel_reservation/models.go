package cancel_reservation

// Request модель запроса на отмену брони пользователем
type Request struct {
	ReservationID int64 // ID брони
	UserID        int64 // ID пользователя, запросившего отмену
}

// Response модель ответа с отмененной бронью
type Response struct {
	ID            int64  // ID брони
	UserID        int64  // ID пользователя
	Status        string // Новый статус (cancelled)
	StatusMessage string // Служебное сообщение
}
