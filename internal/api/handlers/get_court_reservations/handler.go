package get_court_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

const (
	msgInvalidCourtID = "некорректный ID корта"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidStatus  = "некорректный статус брони"
	msgOperatorOnly   = "операция доступна только оператору"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/courts/{courtId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsOperator(r.Context()) {
		h.logger.Warn("GET /courts/{id}/reservations - Not an operator")
		handlers.RespondForbidden(w, msgOperatorOnly)
		return
	}

	vars := mux.Vars(r)
	courtID, err := strconv.ParseInt(vars["courtId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /courts/{id}/reservations - Invalid court ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	req := &models.ListCourtReservationsRequest{CourtID: courtID}

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /courts/{id}/reservations - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.ListCourtReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /courts/{id}/reservations - Invalid filter: court_id=%d", courtID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /courts/{id}/reservations - Failed: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
