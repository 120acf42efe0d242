package get_field_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	scheduleService "github.com/m04kA/SMC-ReservationService/internal/service/schedule"
)

const (
	msgInvalidFieldID = "некорректный ID площадки"
	msgFieldNotFound  = "площадка не найдена"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/fields/{fieldId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	fieldID, err := strconv.ParseInt(vars["fieldId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /fields/{id}/schedule - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), fieldID)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrFieldNotFound):
			h.logger.Warn("GET /fields/{id}/schedule - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFieldID)

		default:
			h.logger.Error("GET /fields/{id}/schedule - Failed: field_id=%d, error=%v", fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
