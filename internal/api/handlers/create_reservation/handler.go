package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgCourtNotFound      = "корт не найден"
	msgDateInPast         = "дата брони в прошлом"
	msgDateClosed         = "площадка закрыта в выбранную дату"
	msgHourUnavailable    = "выбранный час недоступен для бронирования"
	msgSlotConflict       = "выбранные часы уже заняты"
	msgPriceMismatch      = "итоговая цена не совпадает с ценой корта"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: user_id=%d, court_id=%d", userID, req.CourtID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createReservation.ErrCourtNotFound):
			h.logger.Warn("POST /reservations - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Date in past: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createReservation.ErrDateClosed):
			h.logger.Warn("POST /reservations - Field closed: court_id=%d, date=%s", req.CourtID, req.Date)
			handlers.RespondBadRequest(w, msgDateClosed)

		case errors.Is(err, createReservation.ErrHourUnavailable):
			h.logger.Warn("POST /reservations - Hour unavailable: court_id=%d, hours=%v", req.CourtID, req.Hours)
			handlers.RespondBadRequest(w, msgHourUnavailable)

		case errors.Is(err, createReservation.ErrPriceMismatch):
			h.logger.Warn("POST /reservations - Price mismatch: user_id=%d, court_id=%d, price=%.2f",
				userID, req.CourtID, req.TotalPrice)
			handlers.RespondBadRequest(w, msgPriceMismatch)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, court_id=%d",
		result.ID, userID, req.CourtID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
