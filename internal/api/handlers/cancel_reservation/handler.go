package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	cancelReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/cancel_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID брони"
	msgNotFound             = "бронь не найдена"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "бронь принадлежит другому пользователю"
	msgCannotCancel         = "бронь нельзя отменить в текущем статусе"
)

// CancelResponse HTTP response model
type CancelResponse struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	Status        string `json:"status"`
	StatusMessage string `json:"statusMessage"`
}

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelReservation.Request{
		ReservationID: reservationID,
		UserID:        userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelReservation.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelReservation.ErrInvalidStatus):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Cannot cancel: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, cancelReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Cancelled: reservation_id=%d, user_id=%d",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, &CancelResponse{
		ID:            result.ID,
		UserID:        result.UserID,
		Status:        result.Status,
		StatusMessage: result.StatusMessage,
	})
}
