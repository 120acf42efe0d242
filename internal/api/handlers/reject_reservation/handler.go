package reject_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	rejectReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/reject_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidReservationID = "некорректный ID брони"
	msgNotFound             = "бронь не найдена"
	msgInvalidStatus        = "бронь не ожидает подтверждения"
	msgEmptyReason          = "причина отклонения обязательна"
	msgOperatorOnly         = "операция доступна только оператору"
)

// RejectRequest HTTP request model
type RejectRequest struct {
	Reason string `json:"reason"`
}

// RejectResponse HTTP response model
type RejectResponse struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	Status        string `json:"status"`
	StatusMessage string `json:"statusMessage"`
}

type Handler struct {
	useCase RejectReservationUseCase
	logger  Logger
}

func NewHandler(useCase RejectReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsOperator(r.Context()) {
		h.logger.Warn("PATCH /reservations/{id}/reject - Not an operator")
		handlers.RespondForbidden(w, msgOperatorOnly)
		return
	}

	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reject - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req RejectRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rejectReservation.Request{
		ReservationID: reservationID,
		Reason:        req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, rejectReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/reject - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rejectReservation.ErrEmptyReason):
			h.logger.Warn("PATCH /reservations/{id}/reject - Empty reason: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgEmptyReason)

		case errors.Is(err, rejectReservation.ErrInvalidStatus):
			h.logger.Warn("PATCH /reservations/{id}/reject - Invalid status: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidStatus)

		case errors.Is(err, rejectReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reservations/{id}/reject - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/reject - Rejected: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, &RejectResponse{
		ID:            result.ID,
		UserID:        result.UserID,
		Status:        result.Status,
		StatusMessage: result.StatusMessage,
	})
}
