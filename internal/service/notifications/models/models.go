package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// NotificationResponse ответ с данными уведомления
type NotificationResponse struct {
	ID        string    `json:"id"`
	RefID     int64     `json:"refId"` // ID брони, породившей уведомление
	Audience  string    `json:"audience"`
	Category  string    `json:"category"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse ответ со списком уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// FromDomainNotification конвертирует domain модель в DTO
func FromDomainNotification(n *domain.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}

	return &NotificationResponse{
		ID:        n.ID,
		RefID:     n.RefID,
		Audience:  string(n.Audience),
		Category:  string(n.Category),
		Title:     n.Title,
		Body:      n.Body,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// FromDomainNotificationList конвертирует список domain моделей в DTO
func FromDomainNotificationList(notifications []domain.Notification) *NotificationListResponse {
	result := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		result = append(result, *FromDomainNotification(&notifications[i]))
	}
	return &NotificationListResponse{Notifications: result}
}
