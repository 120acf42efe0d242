package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/events"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

// cancelledMessage записывается в status_message при отмене пользователем
const cancelledMessage = "cancelled by requester"

// UseCase use case для отмены брони пользователем
type UseCase struct {
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	scheduler       ExpirationScheduler
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	scheduler ExpirationScheduler,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		scheduler:       scheduler,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отмены брони.
// Пользователь может отменить только свою бронь и только до оплаты.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: reservation=%d, user=%d", req.ReservationID, req.UserID)

	// 1. Валидация входных данных
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	// 2. Получаем бронь и проверяем владельца
	existing, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if existing.UserID != req.UserID {
		uc.logger.Warn("CancelReservation: user id=%d is not the owner of reservation id=%d",
			req.UserID, req.ReservationID)
		return nil, ErrAccessDenied
	}

	if !existing.CanBeCancelledByRequester() {
		uc.logger.Warn("CancelReservation: reservation id=%d is in status %s", existing.ID, existing.Status)
		return nil, fmt.Errorf("%w: current status is %s", ErrInvalidStatus, existing.Status)
	}

	// 3. Переводим бронь в cancelled условным обновлением из прочитанного статуса.
	// Если статус успел измениться, обновление не пройдет.
	updated, err := uc.reservationRepo.Cancel(ctx, req.ReservationID,
		[]domain.ReservationStatus{existing.Status}, cancelledMessage)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNoTransition) {
			uc.logger.Warn("CancelReservation: reservation id=%d changed status concurrently", req.ReservationID)
			return nil, fmt.Errorf("%w: reservation was updated concurrently", ErrInvalidStatus)
		}
		uc.logger.Error("CancelReservation: failed to cancel reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()

	// 4. Если бронь ждала оплаты - снимаем дедлайн и фиксируем аннулированный платеж
	if existing.Status == domain.StatusPaymentPending {
		uc.scheduler.Deregister(updated.ID)

		record := &domain.PaymentRecord{
			ID:            uuid.NewString(),
			ReservationID: updated.ID,
			Amount:        updated.TotalPrice,
			Outcome:       domain.OutcomeVoided,
			Method:        domain.MethodUserRequest,
			RecordedAt:    now,
		}

		uc.createPaymentRecord(ctx, record)
	}

	uc.logger.Info("CancelReservation: reservation id=%d cancelled by user id=%d", updated.ID, req.UserID)

	// 5. Публикуем событие перехода
	uc.publisher.Publish(events.TransitionEvent{
		ReservationID: updated.ID,
		UserID:        updated.UserID,
		OldStatus:     existing.Status,
		NewStatus:     domain.StatusCancelled,
		Actor:         events.ActorRequester,
		OccurredAt:    now,
	})

	return &Response{
		ID:            updated.ID,
		UserID:        updated.UserID,
		Status:        string(updated.Status),
		StatusMessage: cancelledMessage,
	}, nil
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
		uc.logger.Warn("CancelReservation: attempt %d/%d to record voided payment for reservation id=%d failed: %v",
			attempt, paymentRecordAttempts, record.ReservationID, err)
	}
	uc.logger.Error("CancelReservation: payment ledger entry lost for reservation id=%d: %v",
		record.ReservationID, err)
}
