package list_notifications

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgOperatorOnly  = "операторская лента доступна только оператору"
	msgInvalidRefID  = "некорректный ID брони"
)

// audienceOperations значение query-параметра для операторской ленты
const audienceOperations = "operations"

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

// Handle GET /api/v1/notifications?audience=operations&unread=true&refId=10
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /notifications - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	onlyUnread := r.URL.Query().Get("unread") == "true"

	// Необязательный фильтр по брони
	var refID *int64
	if raw := r.URL.Query().Get("refId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /notifications - Invalid refId %q", raw)
			handlers.RespondBadRequest(w, msgInvalidRefID)
			return
		}
		refID = &parsed
	}

	// По умолчанию отдаем ленту пользователя, операторскую - по запросу
	if r.URL.Query().Get("audience") == audienceOperations {
		if !middleware.IsOperator(r.Context()) {
			h.logger.Warn("GET /notifications - Operations feed requested by user_id=%d", userID)
			handlers.RespondForbidden(w, msgOperatorOnly)
			return
		}

		result, err := h.service.ListOperationsNotifications(r.Context(), onlyUnread, refID)
		if err != nil {
			h.logger.Error("GET /notifications - Failed to list operations feed: %v", err)
			handlers.RespondInternalError(w)
			return
		}

		handlers.RespondJSON(w, http.StatusOK, result)
		return
	}

	result, err := h.service.ListUserNotifications(r.Context(), userID, onlyUnread, refID)
	if err != nil {
		h.logger.Error("GET /notifications - Failed to list notifications: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
