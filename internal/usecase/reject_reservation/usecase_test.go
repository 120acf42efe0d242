package reject_reservation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/events"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

type fakeReservationRepo struct {
	existing      *domain.Reservation
	cancelErr     error
	getErr        error
	cancelMessage string
	cancelFrom    []domain.ReservationStatus
}

func (r *fakeReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.existing, nil
}

func (r *fakeReservationRepo) Cancel(_ context.Context, id int64, from []domain.ReservationStatus, message string) (*domain.Reservation, error) {
	r.cancelFrom = from
	r.cancelMessage = message
	if r.cancelErr != nil {
		return nil, r.cancelErr
	}
	updated := *r.existing
	updated.ID = id
	updated.Status = domain.StatusCancelled
	updated.StatusMessage = &message
	return &updated, nil
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
		existing: &domain.Reservation{ID: 10, UserID: 5, Status: domain.StatusRequested},
	}
	publisher := &fakePublisher{}

	uc := NewUseCase(repo, publisher, nopLogger{})
	uc.timeProvider = &fakeClock{now: now}

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Reason:        "  court maintenance  ",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)

	// Причина обрезается по краям
	assert.Equal(t, "court maintenance", resp.StatusMessage)
	assert.Equal(t, "court maintenance", repo.cancelMessage)

	// Отклонить можно только из requested
	assert.Equal(t, []domain.ReservationStatus{domain.StatusRequested}, repo.cancelFrom)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, domain.StatusCancelled, publisher.published[0].NewStatus)
	assert.Equal(t, events.ActorOperator, publisher.published[0].Actor)
	assert.Equal(t, "court maintenance", publisher.published[0].Reason)
}

func TestExecute_EmptyReason(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakePublisher{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, Reason: "   "})

	assert.ErrorIs(t, err, ErrEmptyReason)
}

func TestExecute_ReasonTooLong(t *testing.T) {
	uc := NewUseCase(&fakeReservationRepo{}, &fakePublisher{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 10,
		Reason:        strings.Repeat("x", domain.MaxStatusMessageLength+1),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_WrongStatus(t *testing.T) {
	repo := &fakeReservationRepo{
		existing:  &domain.Reservation{ID: 10, Status: domain.StatusPaid},
		cancelErr: reservationRepo.ErrNoTransition,
	}

	uc := NewUseCase(repo, &fakePublisher{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 10, Reason: "too late"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExecute_NotFound(t *testing.T) {
	repo := &fakeReservationRepo{
		cancelErr: reservationRepo.ErrNoTransition,
		getErr:    reservationRepo.ErrReservationNotFound,
	}

	uc := NewUseCase(repo, &fakePublisher{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{ReservationID: 99, Reason: "reason"})

	assert.ErrorIs(t, err, ErrReservationNotFound)
}
