package mark_notification_read

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	notificationsService "github.com/m04kA/SMC-ReservationService/internal/service/notifications"
)

const (
	msgInvalidNotificationID = "некорректный ID уведомления"
	msgNotFound              = "уведомление не найдено"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/notifications/{notificationId}/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	notificationID := vars["notificationId"]

	if err := h.service.MarkRead(r.Context(), notificationID); err != nil {
		switch {
		case errors.Is(err, notificationsService.ErrNotificationNotFound):
			h.logger.Warn("PATCH /notifications/{id}/read - Not found: notification_id=%s", notificationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, notificationsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidNotificationID)

		default:
			h.logger.Error("PATCH /notifications/{id}/read - Failed: notification_id=%s, error=%v",
				notificationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /notifications/{id}/read - Marked read: notification_id=%s", notificationID)
	w.WriteHeader(http.StatusNoContent)
}
