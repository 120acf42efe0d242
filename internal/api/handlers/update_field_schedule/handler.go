package update_field_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	scheduleService "github.com/m04kA/SMC-ReservationService/internal/service/schedule"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFieldID     = "некорректный ID площадки"
	msgFieldNotFound      = "площадка не найдена"
	msgInvalidSchedule    = "некорректная конфигурация расписания"
	msgOperatorOnly       = "операция доступна только оператору"
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

// Handle PUT /api/v1/fields/{fieldId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if !middleware.IsOperator(r.Context()) {
		h.logger.Warn("PUT /fields/{id}/schedule - Not an operator")
		handlers.RespondForbidden(w, msgOperatorOnly)
		return
	}

	vars := mux.Vars(r)
	fieldID, err := strconv.ParseInt(vars["fieldId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /fields/{id}/schedule - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /fields/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSchedule(r.Context(), fieldID, &req)
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrFieldNotFound):
			h.logger.Warn("PUT /fields/{id}/schedule - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, scheduleService.ErrInvalidSchedule):
			h.logger.Warn("PUT /fields/{id}/schedule - Invalid schedule: field_id=%d, error=%v", fieldID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /fields/{id}/schedule - Invalid input: field_id=%d, error=%v", fieldID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /fields/{id}/schedule - Failed: field_id=%d, error=%v", fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /fields/{id}/schedule - Schedule updated: field_id=%d", fieldID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
