package approve_reservation

import (
	"context"
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
	approveErr error
	getErr     error
}

func (r *fakeReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.existing, nil
}

func (r *fakeReservationRepo) Approve(_ context.Context, id int64, approvedAt time.Time) (*domain.Reservation, error) {
	if r.approveErr != nil {
		return nil, r.approveErr
	}
	updated := *r.existing
	updated.ID = id
	updated.Status = domain.StatusPaymentPending
	updated.ApprovedAt = &approvedAt
	return &updated, nil
}

type fakeScheduler struct {
	registered map[int64]time.Time
}

func (s *fakeScheduler) Register(reservationID int64, deadline time.Time) {
	if s.registered == nil {
		s.registered = make(map[int64]time.Time)
	}
	s.registered[reservationID] = deadline
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

func TestExecute_Success(t *testing.T) {
	now := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{
		existing: &domain.Reservation{ID: 10, UserID: 5, CourtID: 1, Status: domain.StatusRequested},
	}
	scheduler := &fakeScheduler{}
	publisher := &fakePublisher{}

	uc := NewUseCase(repo, scheduler, publisher, nopLogger{})
	uc.timeProvider = &fakeClock{now: now}

	resp, err := uc.Execute(context.Background(), &Request{ReservationID: 10})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPaymentPending), resp.Status)
	assert.Equal(t, now, resp.ApprovedAt)
	assert.Equal(t, now.Add(domain.PaymentWindow), resp.PaymentDeadline)

	// Дедлайн зарегистрирован в планировщике
	assert.Equal(t, now.Add(domain.PaymentWindow), scheduler.registered[10])

	require.Len(t, publisher.published, 1)
	assert.Equal(t, domain.StatusRequested, publisher.published[0].OldStatus)
	assert.Equal(t, domain.StatusPaymentPending, publisher.published[0].NewStatus)
	assert.Equal(t, events.ActorOperator, publisher.published[0].Actor)
}

func TestExecute_AlreadyApproved(t *testing.T) {
	// Условный UPDATE не затронул строк: бронь уже в payment_pending
	repo := &fakeReservationRepo{
		existing:   &domain.Reservation{ID: 10, Status: domain.StatusPaymentPending},
		approveErr: reservationRepo.ErrNoTransition,
	}
	publisher := &fakePublisher{}

	uc := NewUseCase(repo, &fakeScheduler{}, publisher, nopLogger{})
	uc.timeProvider = &fakeClock{now: time.Now()}

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10})

	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Empty(t, publisher.published)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeReservationRepo{
		approveErr: reservationRepo.ErrNoTransition,
		getErr:     reservationRepo.ErrReservationNotFound,
	}

	uc := NewUseCase(repo, &fakeScheduler{}, &fakePublisher{}, nopLogger{})
	uc.timeProvider = &fakeClock{now: time.Now()}

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 99})

	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_InvalidID(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakeScheduler{}, &fakePublisher{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
