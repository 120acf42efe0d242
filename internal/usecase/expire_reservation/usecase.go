package expire_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/events"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

// expiredMessage записывается в status_message при истечении окна оплаты
const expiredMessage = "payment window expired"

// UseCase use case для истечения брони по таймауту оплаты.
// Вызывается планировщиком, когда окно оплаты закрылось без платежа.
type UseCase struct {
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case истечения брони.
// Условное обновление гарантирует, что из гонки оплаты и таймаута
// победит ровно один переход.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExpireReservation: reservation=%d", req.ReservationID)

	// 1. Валидация входных данных
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	// 2. Переводим бронь в cancelled: статус payment_pending и окно оплаты истекло
	updated, err := uc.reservationRepo.Expire(ctx, req.ReservationID,
		now.Add(-domain.PaymentWindow), expiredMessage)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNoTransition) {
			return nil, uc.classifyNoTransition(ctx, req.ReservationID, now)
		}
		uc.logger.Error("ExpireReservation: failed to expire reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to expire reservation: %v", ErrInternal, err)
	}

	// 3. Фиксируем аннулированный платеж по таймауту
	record := &domain.PaymentRecord{
		ID:            uuid.NewString(),
		ReservationID: updated.ID,
		Amount:        updated.TotalPrice,
		Outcome:       domain.OutcomeVoided,
		Method:        domain.MethodSystemTimeout,
		RecordedAt:    now,
	}

	uc.createPaymentRecord(ctx, record)

	uc.logger.Info("ExpireReservation: reservation id=%d expired", updated.ID)

	// 4. Публикуем событие перехода
	uc.publisher.Publish(events.TransitionEvent{
		ReservationID: updated.ID,
		UserID:        updated.UserID,
		OldStatus:     domain.StatusPaymentPending,
		NewStatus:     domain.StatusCancelled,
		Actor:         events.ActorSystem,
		OccurredAt:    now,
	})

	return &Response{
		ID:            updated.ID,
		UserID:        updated.UserID,
		Status:        string(updated.Status),
		StatusMessage: expiredMessage,
	}, nil
}

// Expire адаптер для вызова из планировщика и других use case
func (uc *UseCase) Expire(ctx context.Context, reservationID int64) error {
	_, err := uc.Execute(ctx, &Request{ReservationID: reservationID})
	return err
}

// paymentRecordAttempts число попыток записи в журнал платежей
const paymentRecordAttempts = 3

// createPaymentRecord пишет запись журнала с ограниченным числом повторов.
// Переход уже закоммичен и не откатывается, но потерю записи не маскируем:
// исчерпание попыток логируется как потеря данных журнала.
func (uc *UseCase) createPaymentRecord(ctx context.Context, record *domain.PaymentRecord) {
	var err error
	for attempt := 1; attempt <= paymentRecordAttempts; attempt++ {
		if err = uc.paymentRepo.Create(ctx, record); err == nil {
			return
		}
		uc.logger.Warn("ExpireReservation: attempt %d/%d to record voided payment for reservation id=%d failed: %v",
			attempt, paymentRecordAttempts, record.ReservationID, err)
	}
	uc.logger.Error("ExpireReservation: payment ledger entry lost for reservation id=%d: %v",
		record.ReservationID, err)
}

// classifyNoTransition разбирает, почему условное обновление не прошло
func (uc *UseCase) classifyNoTransition(ctx context.Context, id int64, now time.Time) error {
	existing, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("ExpireReservation: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		uc.logger.Error("ExpireReservation: failed to get reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if existing.Status == domain.StatusPaymentPending {
		if deadline, ok := existing.PaymentDeadline(); ok && now.Before(deadline) {
			uc.logger.Warn("ExpireReservation: reservation id=%d is not due until %s",
				id, deadline.Format("15:04:05"))
			return ErrNotDue
		}
	}

	// Оплата или отмена успели раньше
	uc.logger.Info("ExpireReservation: reservation id=%d already resolved to %s", id, existing.Status)
	return fmt.Errorf("%w: current status is %s", ErrAlreadyResolved, existing.Status)
}
