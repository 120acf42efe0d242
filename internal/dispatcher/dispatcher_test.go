package dispatcher_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/dispatcher"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/events"
	notificationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/notification"
)

// Репозиторий уведомлений должен подходить под контракт диспетчера
var _ dispatcher.NotificationRepository = (*notificationRepo.Repository)(nil)

type fakeNotificationRepo struct {
	mu     sync.Mutex
	stored []domain.Notification
	err    error
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.stored = append(r.stored, *n)
	return nil
}

func (r *fakeNotificationRepo) all() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Notification, len(r.stored))
	copy(out, r.stored)
	return out
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestDispatcher_StoresNotifications(t *testing.T) {
	repo := &fakeNotificationRepo{}
	d := dispatcher.New(repo, nopLogger{})

	ch := make(chan events.TransitionEvent, 1)
	ch <- events.TransitionEvent{
		ReservationID: 10,
		UserID:        5,
		OldStatus:     domain.StatusRequested,
		NewStatus:     domain.StatusPaymentPending,
		Actor:         events.ActorOperator,
		OccurredAt:    time.Now(),
	}
	close(ch)

	d.Run(context.Background(), ch)

	stored := repo.all()
	require.Len(t, stored, 2)
	for _, n := range stored {
		assert.NotEmpty(t, n.ID)
		assert.Equal(t, int64(10), n.RefID)
	}
}

func TestDispatcher_StoreErrorDoesNotStopProcessing(t *testing.T) {
	repo := &fakeNotificationRepo{err: errors.New("db down")}
	d := dispatcher.New(repo, nopLogger{})

	ch := make(chan events.TransitionEvent, 2)
	ch <- events.TransitionEvent{ReservationID: 10, NewStatus: domain.StatusPaid}
	ch <- events.TransitionEvent{ReservationID: 11, NewStatus: domain.StatusPaid}
	close(ch)

	// Ошибки записи проглатываются, Run дочитывает канал до конца
	d.Run(context.Background(), ch)

	assert.Empty(t, repo.all())
}
