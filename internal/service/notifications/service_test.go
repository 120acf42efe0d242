package notifications_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	notificationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-ReservationService/internal/service/notifications"
)

type fakeNotificationRepo struct {
	lastFilter    notificationRepo.Filter
	notifications []domain.Notification
	markReadErr   error
}

func (r *fakeNotificationRepo) List(_ context.Context, filter notificationRepo.Filter) ([]domain.Notification, error) {
	r.lastFilter = filter
	return r.notifications, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, _ string) error {
	return r.markReadErr
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestListUserNotifications_FilterByReservation(t *testing.T) {
	repo := &fakeNotificationRepo{
		notifications: []domain.Notification{
			{ID: "n1", RefID: 42, Audience: domain.AudienceRequester, CreatedAt: time.Now()},
		},
	}
	svc := notifications.NewService(repo, nopLogger{})

	refID := int64(42)
	result, err := svc.ListUserNotifications(context.Background(), 5, false, &refID)

	require.NoError(t, err)
	require.Len(t, result.Notifications, 1)

	// Фильтр брони доходит до репозитория вместе с аудиторией и адресатом
	require.NotNil(t, repo.lastFilter.RefID)
	assert.Equal(t, int64(42), *repo.lastFilter.RefID)
	require.NotNil(t, repo.lastFilter.Audience)
	assert.Equal(t, domain.AudienceRequester, *repo.lastFilter.Audience)
	require.NotNil(t, repo.lastFilter.TargetUserID)
	assert.Equal(t, int64(5), *repo.lastFilter.TargetUserID)
}

func TestListUserNotifications_NoReservationFilter(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := notifications.NewService(repo, nopLogger{})

	_, err := svc.ListUserNotifications(context.Background(), 5, true, nil)

	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.RefID)
	assert.True(t, repo.lastFilter.OnlyUnread)
}

func TestListOperationsNotifications_FilterByReservation(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := notifications.NewService(repo, nopLogger{})

	refID := int64(7)
	_, err := svc.ListOperationsNotifications(context.Background(), false, &refID)

	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.RefID)
	assert.Equal(t, int64(7), *repo.lastFilter.RefID)
	require.NotNil(t, repo.lastFilter.Audience)
	assert.Equal(t, domain.AudienceOperations, *repo.lastFilter.Audience)
}
