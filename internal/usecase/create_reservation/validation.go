package create_reservation

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.Hours) == 0 {
		return fmt.Errorf("%w: at least one hour is required", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(req.Hours))
	for _, hour := range req.Hours {
		if hour < domain.MinDayHour || hour > domain.MaxDayHour {
			return fmt.Errorf("%w: hour %d is out of range", ErrInvalidInput, hour)
		}
		if seen[hour] {
			return fmt.Errorf("%w: duplicate hour %d", ErrInvalidInput, hour)
		}
		seen[hour] = true
	}

	return nil
}

// normalizeHours возвращает отсортированную копию часов запроса
func normalizeHours(hours []int) []int {
	normalized := make([]int, len(hours))
	copy(normalized, hours)
	sort.Ints(normalized)
	return normalized
}

// validateDateNotPast проверяет, что дата брони не в прошлом
func validateDateNotPast(date, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	return nil
}

// priceTolerance допуск сравнения цены клиента с серверной
const priceTolerance = 0.01

// validateTotalPrice сверяет цену клиента с серверной.
// Нулевая цена клиента означает "посчитай сам" и проверку не вызывает.
func validateTotalPrice(clientPrice, serverPrice float64) error {
	if clientPrice <= 0 {
		return nil
	}
	if math.Abs(clientPrice-serverPrice) > priceTolerance {
		return fmt.Errorf("%w: got %.2f, expected %.2f", ErrPriceMismatch, clientPrice, serverPrice)
	}
	return nil
}

// findClaimedHours возвращает часы запроса, уже занятые активными бронями
func findClaimedHours(hours []int, reservations []*domain.Reservation) []int {
	claimed := make([]int, 0)

	for _, hour := range hours {
		for _, reservation := range reservations {
			if !reservation.IsClaiming() {
				continue
			}
			if reservation.ClaimsHour(hour) {
				claimed = append(claimed, hour)
				break
			}
		}
	}

	return claimed
}
