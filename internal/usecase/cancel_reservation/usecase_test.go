package cancel_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/events"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

type fakeReservationRepo struct {
	existing   *domain.Reservation
	getErr     error
	cancelErr  error
	cancelFrom []domain.ReservationStatus
}

func (r *fakeReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.existing, nil
}

func (r *fakeReservationRepo) Cancel(_ context.Context, id int64, from []domain.ReservationStatus, message string) (*domain.Reservation, error) {
	r.cancelFrom = from
	if r.cancelErr != nil {
		return nil, r.cancelErr
	}
	updated := *r.existing
	updated.ID = id
	updated.Status = domain.StatusCancelled
	updated.StatusMessage = &message
	return &updated, nil
}

type fakePaymentRepo struct {
	failures int // число первых вызовов Create, завершающихся ошибкой
	calls    int
	records  []*domain.PaymentRecord
}

func (r *fakePaymentRepo) Create(_ context.Context, record *domain.PaymentRecord) error {
	r.calls++
	if r.calls <= r.failures {
		return errors.New("db down")
	}
	r.records = append(r.records, record)
	return nil
}

type fakeScheduler struct {
	deregistered []int64
}

func (s *fakeScheduler) Deregister(reservationID int64) {
	s.deregistered = append(s.deregistered, reservationID)
}

type fakePublisher struct {
	published []events.TransitionEvent
}

func (p *fakePublisher) Publish(ev events.TransitionEvent) {
	p.published = append(p.published, ev)
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(repo *fakeReservationRepo, payments *fakePaymentRepo, scheduler *fakeScheduler, publisher *fakePublisher, now time.Time) *UseCase {
	uc := NewUseCase(repo, payments, scheduler, publisher, nopLogger{})
	uc.timeProvider = &fakeClock{now: now}
	return uc
}

func TestExecute_CancelRequested(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{
		existing: &domain.Reservation{ID: 10, UserID: 5, Status: domain.StatusRequested, TotalPrice: 3000},
	}
	payments := &fakePaymentRepo{}
	scheduler := &fakeScheduler{}
	publisher := &fakePublisher{}

	uc := newTestUseCase(repo, payments, scheduler, publisher, now)

	resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10, UserID: 5})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)

	// Отмена условная на прочитанный статус
	assert.Equal(t, []domain.ReservationStatus{domain.StatusRequested}, repo.cancelFrom)

	// Бронь еще не была одобрена: ни дедлайна, ни записи в журнале платежей
	assert.Empty(t, scheduler.deregistered)
	assert.Empty(t, payments.records)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, domain.StatusRequested, publisher.published[0].OldStatus)
	assert.Equal(t, domain.StatusCancelled, publisher.published[0].NewStatus)
	assert.Equal(t, events.ActorRequester, publisher.published[0].Actor)
}

func TestExecute_CancelPaymentPending(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	approvedAt := now.Add(-10 * time.Minute)
	repo := &fakeReservationRepo{
		existing: &domain.Reservation{
			ID:         10,
			UserID:     5,
			Status:     domain.StatusPaymentPending,
			TotalPrice: 3000,
			ApprovedAt: &approvedAt,
		},
	}
	payments := &fakePaymentRepo{}
	scheduler := &fakeScheduler{}

	uc := newTestUseCase(repo, payments, scheduler, &fakePublisher{}, now)

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, UserID: 5})

	require.NoError(t, err)

	// Дедлайн снят, в журнале аннулированный платеж
	assert.Equal(t, []int64{10}, scheduler.deregistered)
	require.Len(t, payments.records, 1)
	assert.Equal(t, domain.OutcomeVoided, payments.records[0].Outcome)
	assert.Equal(t, domain.MethodUserRequest, payments.records[0].Method)
	assert.Equal(t, float64(3000), payments.records[0].Amount)
	assert.NotEmpty(t, payments.records[0].ID)
}

func TestExecute_LedgerWriteRetried(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	approvedAt := now.Add(-10 * time.Minute)
	repo := &fakeReservationRepo{
		existing: &domain.Reservation{
			ID:         10,
			UserID:     5,
			Status:     domain.StatusPaymentPending,
			TotalPrice: 3000,
			ApprovedAt: &approvedAt,
		},
	}
	// Первая запись журнала падает, вторая проходит
	payments := &fakePaymentRepo{failures: 1}

	uc := newTestUseCase(repo, payments, &fakeScheduler{}, &fakePublisher{}, now)

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, UserID: 5})

	require.NoError(t, err)
	assert.Equal(t, 2, payments.calls)
	require.Len(t, payments.records, 1)
	assert.Equal(t, domain.MethodUserRequest, payments.records[0].Method)
}

func TestExecute_NotOwner(t *testing.T) {
	repo := &fakeReservationRepo{
		existing: &domain.Reservation{ID: 10, UserID: 5, Status: domain.StatusRequested},
	}

	uc := newTestUseCase(repo, &fakePaymentRepo{}, &fakeScheduler{}, &fakePublisher{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, UserID: 7})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_AlreadyPaid(t *testing.T) {
	repo := &fakeReservationRepo{
		existing: &domain.Reservation{ID: 10, UserID: 5, Status: domain.StatusPaid},
	}

	uc := newTestUseCase(repo, &fakePaymentRepo{}, &fakeScheduler{}, &fakePublisher{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, UserID: 5})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeReservationRepo{getErr: reservationRepo.ErrReservationNotFound}

	uc := newTestUseCase(repo, &fakePaymentRepo{}, &fakeScheduler{}, &fakePublisher{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 99, UserID: 5})

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_LostRace(t *testing.T) {
	// Между чтением и отменой статус изменился (например, оператор одобрил)
	repo := &fakeReservationRepo{
		existing:  &domain.Reservation{ID: 10, UserID: 5, Status: domain.StatusRequested},
		cancelErr: reservationRepo.ErrNoTransition,
	}
	publisher := &fakePublisher{}

	uc := newTestUseCase(repo, &fakePaymentRepo{}, &fakeScheduler{}, publisher, time.Now())

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, UserID: 5})

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Empty(t, publisher.published)
}
