package pay_reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	payReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/pay_reservation"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidReservationID = "некорректный ID брони"
	msgNotFound             = "бронь не найдена"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "бронь принадлежит другому пользователю"
	msgNotPayable           = "бронь не ожидает оплаты"
	msgWindowExpired        = "окно оплаты истекло"
	msgUnknownMethod        = "неизвестный платежный метод"
	msgPaymentFailed        = "не удалось обработать платеж"
)

// PayRequest HTTP request model
type PayRequest struct {
	Method string `json:"method"` // DANA | GOPAY | OVO
}

// PayResponse HTTP response model
type PayResponse struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	ProcessedAt string  `json:"processedAt"`
}

type Handler struct {
	useCase PayReservationUseCase
	logger  Logger
}

func NewHandler(useCase PayReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /reservations/{id}/payment - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &payReservation.Request{
		ReservationID: reservationID,
		UserID:        userID,
		Method:        req.Method,
	})
	if err != nil {
		switch {
		case errors.Is(err, payReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/payment - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payReservation.ErrAccessDenied):
			h.logger.Warn("POST /reservations/{id}/payment - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payReservation.ErrWindowExpired):
			h.logger.Warn("POST /reservations/{id}/payment - Window expired: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgWindowExpired)

		case errors.Is(err, payReservation.ErrNotPayable):
			h.logger.Warn("POST /reservations/{id}/payment - Not payable: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgNotPayable)

		case errors.Is(err, payReservation.ErrUnknownMethod):
			h.logger.Warn("POST /reservations/{id}/payment - Unknown method: %s", req.Method)
			handlers.RespondBadRequest(w, msgUnknownMethod)

		case errors.Is(err, payReservation.ErrPaymentFailed):
			h.logger.Error("POST /reservations/{id}/payment - Payment failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentFailed)

		case errors.Is(err, payReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations/{id}/payment - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/payment - Paid: reservation_id=%d, user_id=%d, method=%s",
		reservationID, userID, result.Method)
	handlers.RespondJSON(w, http.StatusOK, &PayResponse{
		ID:          result.ID,
		UserID:      result.UserID,
		Status:      result.Status,
		Amount:      result.Amount,
		Method:      result.Method,
		ProcessedAt: result.ProcessedAt.Format(time.RFC3339),
	})
}
