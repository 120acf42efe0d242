package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusRequested      ReservationStatus = "requested"
	StatusPaymentPending ReservationStatus = "payment_pending"
	StatusPaid           ReservationStatus = "paid"
	StatusCancelled      ReservationStatus = "cancelled"
)

// Reservation represents a court reservation in the system
type Reservation struct {
	ID         int64
	UserID     int64
	CourtID    int64
	Date       time.Time
	Hours      []int // каждый час бронируется отдельно, диапазон не обязан быть непрерывным
	TotalPrice float64
	Status     ReservationStatus

	// Причина отмены или системное сообщение о статусе
	StatusMessage *string

	CreatedAt  time.Time
	ApprovedAt *time.Time // устанавливается при переходе в payment_pending
	UpdatedAt  time.Time
}

// IsClaiming returns true if the reservation holds its hours against other bookings.
// Cancelled reservations release their hours immediately and permanently.
func (r *Reservation) IsClaiming() bool {
	return r.Status == StatusRequested ||
		r.Status == StatusPaymentPending ||
		r.Status == StatusPaid
}

// IsTerminal returns true if no further transition is permitted
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusPaid || r.Status == StatusCancelled
}

// CanBeCancelledByRequester returns true if the requester may still cancel
func (r *Reservation) CanBeCancelledByRequester() bool {
	return r.Status == StatusRequested || r.Status == StatusPaymentPending
}

// PaymentDeadline returns the moment the payment window closes.
// Вычисляется только от реального approved_at, без пересчёта (см. DESIGN.md).
func (r *Reservation) PaymentDeadline() (time.Time, bool) {
	if r.ApprovedAt == nil {
		return time.Time{}, false
	}
	return r.ApprovedAt.Add(PaymentWindow), true
}

// ClaimsHour returns true if the reservation claims the given hour
func (r *Reservation) ClaimsHour(hour int) bool {
	for _, h := range r.Hours {
		if h == hour {
			return true
		}
	}
	return false
}

// ReservationFilter фильтр для выборки бронирований корта
type ReservationFilter struct {
	CourtID      int64              // Обязательный параметр
	Date         *time.Time         // Конкретная дата (опционально)
	Status       *ReservationStatus // Фильтр по статусу (опционально)
	OnlyClaiming bool               // Только бронирования, удерживающие часы (без cancelled)
}
