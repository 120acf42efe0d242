package reject_reservation

// Request модель запроса на отклонение брони оператором
type Request struct {
	ReservationID int64  // ID брони
	Reason        string // Причина отклонения (обязательна)
}

// Response модель ответа с отклоненной бронью
type Response struct {
	ID            int64  // ID брони
	UserID        int64  // ID пользователя
	Status        string // Новый статус (cancelled)
	StatusMessage string // Причина отклонения
}
