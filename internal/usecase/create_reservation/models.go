package create_reservation

import "time"

// Request модель запроса на создание брони
type Request struct {
	UserID  int64     // ID пользователя
	CourtID int64     // ID корта
	Date    time.Time // Дата брони (без времени)
	Hours   []int     // Часы слотов (например, [10, 11])

	// Цена, посчитанная клиентом. Если передана (> 0), сверяется с
	// серверной ценой корта; источником истины остается сервер.
	TotalPrice float64
}

// Response модель ответа с созданной бронью
type Response struct {
	ID         int64     // ID созданной брони
	UserID     int64     // ID пользователя
	CourtID    int64     // ID корта
	Date       time.Time // Дата брони
	Hours      []int     // Забронированные часы
	TotalPrice float64   // Итоговая стоимость
	Status     string    // Статус брони
	CreatedAt  time.Time // Время создания
}
