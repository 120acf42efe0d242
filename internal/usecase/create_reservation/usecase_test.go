package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/events"
	courtRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/court"
)

type fakeReservationRepo struct {
	existing []*domain.Reservation
	created  *domain.Reservation
}

func (r *fakeReservationRepo) Create(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	created := *reservation
	created.ID = 100
	created.CreatedAt = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	r.created = &created
	return &created, nil
}

func (r *fakeReservationRepo) ListByCourtAndDate(_ context.Context, _ domain.ReservationFilter) ([]*domain.Reservation, error) {
	return r.existing, nil
}

type fakeCourtRepo struct {
	court *domain.Court
	err   error
}

func (r *fakeCourtRepo) GetByID(_ context.Context, _ int64) (*domain.Court, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.court, nil
}

type fakeScheduleRepo struct {
	schedule *domain.ScheduleConfig
}

func (r *fakeScheduleRepo) GetByCourtID(_ context.Context, _ int64) (*domain.ScheduleConfig, error) {
	return r.schedule, nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func testSchedule() *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		FieldID:        1,
		OpenHour:       8,
		CloseHour:      22,
		BreakHours:     []int{13},
		ClosedWeekdays: []int{0},
		ClosedDates: []time.Time{
			time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		},
	}
}

func newTestUseCase(
	reservationRepo ReservationRepository,
	courts CourtRepository,
	schedules ScheduleRepository,
	publisher EventPublisher,
	now time.Time,
) *UseCase {
	uc := NewUseCase(reservationRepo, courts, schedules, &fakeTxManager{}, publisher, nopLogger{})
	uc.timeProvider = &fakeClock{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{}
	publisher := &fakePublisher{}
	uc := newTestUseCase(
		repo,
		&fakeCourtRepo{court: &domain.Court{ID: 1, FieldID: 1, PricePerHour: 1500}},
		&fakeScheduleRepo{schedule: testSchedule()},
		publisher,
		now,
	)

	// Часы передаем в произвольном порядке - в брони они должны быть отсортированы
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:  5,
		CourtID: 1,
		Date:    time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		Hours:   []int{11, 10},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, []int{10, 11}, resp.Hours)
	assert.Equal(t, float64(3000), resp.TotalPrice)
	assert.Equal(t, string(domain.StatusRequested), resp.Status)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, domain.StatusRequested, publisher.published[0].NewStatus)
	assert.Equal(t, events.ActorRequester, publisher.published[0].Actor)
}

func TestExecute_SlotConflict(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{
		existing: []*domain.Reservation{
			{ID: 50, Status: domain.StatusPaymentPending, Hours: []int{11, 12}},
		},
	}
	publisher := &fakePublisher{}
	uc := newTestUseCase(
		repo,
		&fakeCourtRepo{court: &domain.Court{ID: 1, PricePerHour: 1500}},
		&fakeScheduleRepo{schedule: testSchedule()},
		publisher,
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  5,
		CourtID: 1,
		Date:    time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		Hours:   []int{10, 11},
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, repo.created)
	assert.Empty(t, publisher.published)
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	// Отмененная бронь освобождает часы
	repo := &fakeReservationRepo{
		existing: []*domain.Reservation{
			{ID: 50, Status: domain.StatusCancelled, Hours: []int{10, 11}},
		},
	}
	uc := newTestUseCase(
		repo,
		&fakeCourtRepo{court: &domain.Court{ID: 1, PricePerHour: 1500}},
		&fakeScheduleRepo{schedule: testSchedule()},
		&fakePublisher{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  5,
		CourtID: 1,
		Date:    time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		Hours:   []int{10, 11},
	})

	require.NoError(t, err)
}

func TestExecute_BreakHour(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeCourtRepo{court: &domain.Court{ID: 1, PricePerHour: 1500}},
		&fakeScheduleRepo{schedule: testSchedule()},
		&fakePublisher{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  5,
		CourtID: 1,
		Date:    time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		Hours:   []int{13},
	})

	assert.ErrorIs(t, err, ErrHourUnavailable)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeCourtRepo{court: &domain.Court{ID: 1, PricePerHour: 1500}},
		&fakeScheduleRepo{schedule: testSchedule()},
		&fakePublisher{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  5,
		CourtID: 1,
		Date:    time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		Hours:   []int{7},
	})

	assert.ErrorIs(t, err, ErrHourUnavailable)
}

func TestExecute_ClosedDate(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeCourtRepo{court: &domain.Court{ID: 1, PricePerHour: 1500}},
		&fakeScheduleRepo{schedule: testSchedule()},
		&fakePublisher{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  5,
		CourtID: 1,
		Date:    time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		Hours:   []int{10},
	})

	assert.ErrorIs(t, err, ErrDateClosed)
}

func TestExecute_PastDate(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeCourtRepo{court: &domain.Court{ID: 1, PricePerHour: 1500}},
		&fakeScheduleRepo{schedule: testSchedule()},
		&fakePublisher{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  5,
		CourtID: 1,
		Date:    time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		Hours:   []int{10},
	})

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SameDayAllowed(t *testing.T) {
	now := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeCourtRepo{court: &domain.Court{ID: 1, PricePerHour: 1500}},
		&fakeScheduleRepo{schedule: testSchedule()},
		&fakePublisher{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  5,
		CourtID: 1,
		Date:    time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		Hours:   []int{10},
	})

	require.NoError(t, err)
}

func TestExecute_ClientPriceMatches(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeCourtRepo{court: &domain.Court{ID: 1, PricePerHour: 1500}},
		&fakeScheduleRepo{schedule: testSchedule()},
		&fakePublisher{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:     5,
		CourtID:    1,
		Date:       time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		Hours:      []int{10, 11},
		TotalPrice: 3000,
	})

	require.NoError(t, err)
	assert.Equal(t, float64(3000), resp.TotalPrice)
}

func TestExecute_ClientPriceMismatch(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{}
	uc := newTestUseCase(
		repo,
		&fakeCourtRepo{court: &domain.Court{ID: 1, PricePerHour: 1500}},
		&fakeScheduleRepo{schedule: testSchedule()},
		&fakePublisher{},
		now,
	)

	// Клиент прислал цену, не совпадающую с серверной
	_, err := uc.Execute(context.Background(), &Request{
		UserID:     5,
		CourtID:    1,
		Date:       time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		Hours:      []int{10, 11},
		TotalPrice: 100,
	})

	assert.ErrorIs(t, err, ErrPriceMismatch)
	assert.Nil(t, repo.created)
}

func TestExecute_ZeroClientPriceComputedByServer(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeCourtRepo{court: &domain.Court{ID: 1, PricePerHour: 1500}},
		&fakeScheduleRepo{schedule: testSchedule()},
		&fakePublisher{},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:  5,
		CourtID: 1,
		Date:    time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		Hours:   []int{10, 11},
	})

	require.NoError(t, err)
	assert.Equal(t, float64(3000), resp.TotalPrice)
}

func TestExecute_CourtNotFound(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeCourtRepo{err: courtRepo.ErrCourtNotFound},
		&fakeScheduleRepo{schedule: testSchedule()},
		&fakePublisher{},
		now,
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  5,
		CourtID: 99,
		Date:    time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		Hours:   []int{10},
	})

	assert.ErrorIs(t, err, ErrCourtNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(
		&fakeReservationRepo{},
		&fakeCourtRepo{court: &domain.Court{ID: 1, PricePerHour: 1500}},
		&fakeScheduleRepo{schedule: testSchedule()},
		&fakePublisher{},
		now,
	)
	date := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero user", &Request{UserID: 0, CourtID: 1, Date: date, Hours: []int{10}}},
		{"zero court", &Request{UserID: 5, CourtID: 0, Date: date, Hours: []int{10}}},
		{"empty hours", &Request{UserID: 5, CourtID: 1, Date: date, Hours: []int{}}},
		{"hour out of range", &Request{UserID: 5, CourtID: 1, Date: date, Hours: []int{24}}},
		{"duplicate hours", &Request{UserID: 5, CourtID: 1, Date: date, Hours: []int{10, 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
