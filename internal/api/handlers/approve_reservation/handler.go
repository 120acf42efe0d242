package approve_reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	approveReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/approve_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgNotFound             = "бронь не найдена"
	msgInvalidStatus        = "бронь не ожидает подтверждения"
	msgOperatorOnly         = "операция доступна только оператору"
)

// ApproveResponse HTTP response model
type ApproveResponse struct {
	ID              int64  `json:"id"`
	UserID          int64  `json:"userId"`
	CourtID         int64  `json:"courtId"`
	Status          string `json:"status"`
	ApprovedAt      string `json:"approvedAt"`
	PaymentDeadline string `json:"paymentDeadline"`
}

type Handler struct {
	useCase ApproveReservationUseCase
	logger  Logger
}

func NewHandler(useCase ApproveReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsOperator(r.Context()) {
		h.logger.Warn("PATCH /reservations/{id}/approve - Not an operator")
		handlers.RespondForbidden(w, msgOperatorOnly)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/approve - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &approveReservation.Request{ReservationID: reservationID})
	if err != nil {
		switch {
		case errors.Is(err, approveReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/approve - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, approveReservation.ErrInvalidStatus):
			h.logger.Warn("PATCH /reservations/{id}/approve - Invalid status: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidStatus)

		case errors.Is(err, approveReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("PATCH /reservations/{id}/approve - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/approve - Approved: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, &ApproveResponse{
		ID:              result.ID,
		UserID:          result.UserID,
		CourtID:         result.CourtID,
		Status:          result.Status,
		ApprovedAt:      result.ApprovedAt.Format(time.RFC3339),
		PaymentDeadline: result.PaymentDeadline.Format(time.RFC3339),
	})
}
