package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	CourtID    int64   `json:"courtId"`
	Date       string  `json:"date"` // "2025-10-15"
	Hours      []int   `json:"hours"`
	TotalPrice float64 `json:"totalPrice"` // цена клиента, сверяется с серверной
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"userId"`
	CourtID    int64   `json:"courtId"`
	Date       string  `json:"date"`
	Hours      []int   `json:"hours"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(userID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		UserID:     userID,
		CourtID:    r.CourtID,
		Date:       date,
		Hours:      r.Hours,
		TotalPrice: r.TotalPrice,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:         resp.ID,
		UserID:     resp.UserID,
		CourtID:    resp.CourtID,
		Date:       resp.Date.Format(domain.DateFormat),
		Hours:      resp.Hours,
		TotalPrice: resp.TotalPrice,
		Status:     resp.Status,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}
