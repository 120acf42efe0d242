package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// ListUserReservationsRequest запрос на получение броней пользователя
type ListUserReservationsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// ListCourtReservationsRequest запрос на получение броней корта на дату
type ListCourtReservationsRequest struct {
	CourtID      int64      `json:"courtId"`
	Date         *time.Time `json:"date,omitempty"`
	Status       *string    `json:"status,omitempty"`
	OnlyClaiming bool       `json:"onlyClaiming,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListCourtReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		CourtID:      r.CourtID,
		Date:         r.Date,
		OnlyClaiming: r.OnlyClaiming,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	CourtID       int64   `json:"courtId"`
	Date          string  `json:"date"` // "2025-10-15"
	Hours         []int   `json:"hours"`
	TotalPrice    float64 `json:"totalPrice"`
	Status        string  `json:"status"`
	StatusMessage *string `json:"statusMessage,omitempty"`

	ApprovedAt      *time.Time `json:"approvedAt,omitempty"`
	PaymentDeadline *time.Time `json:"paymentDeadline,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		CourtID:       r.CourtID,
		Date:          r.Date.Format(domain.DateFormat),
		Hours:         r.Hours,
		TotalPrice:    r.TotalPrice,
		Status:        string(r.Status),
		StatusMessage: r.StatusMessage,
		ApprovedAt:    r.ApprovedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}

	// Дедлайн оплаты показываем только пока бронь его ждет
	if deadline, ok := r.PaymentDeadline(); ok && r.Status == domain.StatusPaymentPending {
		resp.PaymentDeadline = &deadline
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	result := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, *FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: result}
}

// ToDomainReservationStatus конвертирует строку в domain статус
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(status) {
	case domain.StatusRequested, domain.StatusPaymentPending, domain.StatusPaid, domain.StatusCancelled:
		return domain.ReservationStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
