package expire_reservation

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
	existing       *domain.Reservation
	getErr         error
	expireErr      error
	approvedBefore time.Time
	message        string
}

func (r *fakeReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.existing, nil
}

func (r *fakeReservationRepo) Expire(_ context.Context, id int64, approvedBefore time.Time, message string) (*domain.Reservation, error) {
	r.approvedBefore = approvedBefore
	r.message = message
	if r.expireErr != nil {
		return nil, r.expireErr
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

func newTestUseCase(repo *fakeReservationRepo, payments *fakePaymentRepo, publisher *fakePublisher, now time.Time) *UseCase {
	uc := NewUseCase(repo, payments, publisher, nopLogger{})
	uc.timeProvider = &fakeClock{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	approvedAt := now.Add(-time.Hour)
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
	publisher := &fakePublisher{}

	uc := newTestUseCase(repo, payments, publisher, now)

	resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, "payment window expired", resp.StatusMessage)

	// Условие: approved_at раньше, чем (now - окно оплаты)
	assert.Equal(t, now.Add(-domain.PaymentWindow), repo.approvedBefore)

	// В журнале аннулированный платеж по таймауту
	require.Len(t, payments.records, 1)
	assert.Equal(t, domain.OutcomeVoided, payments.records[0].Outcome)
	assert.Equal(t, domain.MethodSystemTimeout, payments.records[0].Method)
	assert.Equal(t, float64(3000), payments.records[0].Amount)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, domain.StatusCancelled, publisher.published[0].NewStatus)
	assert.Equal(t, events.ActorSystem, publisher.published[0].Actor)
}

func TestExecute_LedgerWriteRetried(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	approvedAt := now.Add(-time.Hour)
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

	uc := newTestUseCase(repo, payments, &fakePublisher{}, now)

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10})

	require.NoError(t, err)
	assert.Equal(t, 2, payments.calls)
	require.Len(t, payments.records, 1)
	assert.Equal(t, domain.MethodSystemTimeout, payments.records[0].Method)
}

func TestExecute_NotDue(t *testing.T) {
	// Условное обновление не прошло: дедлайн еще впереди
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	approvedAt := now.Add(-10 * time.Minute)
	repo := &fakeReservationRepo{
		existing: &domain.Reservation{
			ID:         10,
			Status:     domain.StatusPaymentPending,
			ApprovedAt: &approvedAt,
		},
		expireErr: reservationRepo.ErrNoTransition,
	}
	publisher := &fakePublisher{}

	uc := newTestUseCase(repo, &fakePaymentRepo{}, publisher, now)

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10})

	assert.ErrorIs(t, err, ErrNotDue)
	assert.Empty(t, publisher.published)
}

func TestExecute_AlreadyResolved(t *testing.T) {
	// Оплата успела раньше таймаута
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{
		existing:  &domain.Reservation{ID: 10, Status: domain.StatusPaid},
		expireErr: reservationRepo.ErrNoTransition,
	}
	payments := &fakePaymentRepo{}

	uc := newTestUseCase(repo, payments, &fakePublisher{}, now)

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10})

	assert.ErrorIs(t, err, ErrAlreadyResolved)
	assert.Empty(t, payments.records)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeReservationRepo{
		expireErr: reservationRepo.ErrNoTransition,
		getErr:    reservationRepo.ErrReservationNotFound,
	}

	uc := newTestUseCase(repo, &fakePaymentRepo{}, &fakePublisher{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 99})

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExpire_Adapter(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	approvedAt := now.Add(-time.Hour)
	repo := &fakeReservationRepo{
		existing: &domain.Reservation{
			ID:         10,
			UserID:     5,
			Status:     domain.StatusPaymentPending,
			ApprovedAt: &approvedAt,
		},
	}

	uc := newTestUseCase(repo, &fakePaymentRepo{}, &fakePublisher{}, now)

	assert.NoError(t, uc.Expire(context.Background(), 10))
}
