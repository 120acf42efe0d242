package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	notificationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-ReservationService/internal/service/notifications/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// Service сервис для работы с уведомлениями
type Service struct {
	notificationRepo NotificationRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(notificationRepo NotificationRepository, logger Logger) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// ListUserNotifications получает уведомления пользователя, новые первыми.
// refID, если задан, сужает выборку до уведомлений одной брони.
func (s *Service) ListUserNotifications(ctx context.Context, userID int64, onlyUnread bool, refID *int64) (*models.NotificationListResponse, error) {
	s.logger.Info("ListUserNotifications: user=%d, onlyUnread=%v", userID, onlyUnread)

	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	filter := notificationRepo.Filter{
		Audience:     ptr.Ptr(domain.AudienceRequester),
		TargetUserID: &userID,
		RefID:        refID,
		OnlyUnread:   onlyUnread,
	}

	notifications, err := s.notificationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListUserNotifications: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListUserNotifications - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainNotificationList(notifications), nil
}

// ListOperationsNotifications получает уведомления операторской ленты.
// refID, если задан, сужает выборку до уведомлений одной брони.
func (s *Service) ListOperationsNotifications(ctx context.Context, onlyUnread bool, refID *int64) (*models.NotificationListResponse, error) {
	s.logger.Info("ListOperationsNotifications: onlyUnread=%v", onlyUnread)

	filter := notificationRepo.Filter{
		Audience:   ptr.Ptr(domain.AudienceOperations),
		RefID:      refID,
		OnlyUnread: onlyUnread,
	}

	notifications, err := s.notificationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListOperationsNotifications: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListOperationsNotifications - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainNotificationList(notifications), nil
}

// MarkRead помечает уведомление прочитанным
func (s *Service) MarkRead(ctx context.Context, id string) error {
	s.logger.Info("MarkRead: notification=%s", id)

	if id == "" {
		return fmt.Errorf("%w: notification id is required", ErrInvalidInput)
	}

	if err := s.notificationRepo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification id=%s not found", id)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification id=%s: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	return nil
}
