package domain

import "time"

// NotificationAudience определяет, кому адресовано уведомление
type NotificationAudience string

const (
	AudienceRequester  NotificationAudience = "requester"
	AudienceOperations NotificationAudience = "operations"
)

// NotificationCategory определяет визуальную категорию уведомления
type NotificationCategory string

const (
	CategoryInfo    NotificationCategory = "info"
	CategorySuccess NotificationCategory = "success"
	CategoryError   NotificationCategory = "error"
)

// Notification is an append-only record produced by the dispatcher
// on every committed reservation transition.
type Notification struct {
	ID           string // uuid
	RefID        int64  // reservation id
	TargetUserID *int64 // только для requester-уведомлений
	Audience     NotificationAudience
	Category     NotificationCategory
	Title        string
	Body         string
	IsRead       bool
	CreatedAt    time.Time
}
