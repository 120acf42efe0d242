package approve_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/events"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

// UseCase use case для подтверждения брони оператором
type UseCase struct {
	reservationRepo ReservationRepository
	scheduler       ExpirationScheduler
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	scheduler ExpirationScheduler,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		scheduler:       scheduler,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case подтверждения брони.
// Переход requested -> payment_pending выполняется условным UPDATE,
// поэтому повторное подтверждение невозможно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ApproveReservation: reservation=%d", req.ReservationID)

	// 1. Валидация входных данных
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	// 2. Получаем текущее время - от него отсчитывается окно оплаты
	now := uc.timeProvider.Now()

	// 3. Переводим бронь в payment_pending условным обновлением
	updated, err := uc.reservationRepo.Approve(ctx, req.ReservationID, now)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNoTransition) {
			// Строка не обновлена: либо брони нет, либо она уже не в requested
			existing, getErr := uc.reservationRepo.GetByID(ctx, req.ReservationID)
			if getErr != nil {
				if errors.Is(getErr, reservationRepo.ErrReservationNotFound) {
					uc.logger.Warn("ApproveReservation: reservation id=%d not found", req.ReservationID)
					return nil, ErrReservationNotFound
				}
				uc.logger.Error("ApproveReservation: failed to get reservation id=%d: %v", req.ReservationID, getErr)
				return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, getErr)
			}
			uc.logger.Warn("ApproveReservation: reservation id=%d is in status %s", req.ReservationID, existing.Status)
			return nil, fmt.Errorf("%w: current status is %s", ErrInvalidStatus, existing.Status)
		}
		uc.logger.Error("ApproveReservation: failed to approve reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to approve reservation: %v", ErrInternal, err)
	}

	deadline, _ := updated.PaymentDeadline()

	// 4. Регистрируем дедлайн оплаты в планировщике
	uc.scheduler.Register(updated.ID, deadline)

	uc.logger.Info("ApproveReservation: reservation id=%d approved, payment deadline %s",
		updated.ID, deadline.Format("15:04:05"))

	// 5. Публикуем событие перехода
	uc.publisher.Publish(events.TransitionEvent{
		ReservationID: updated.ID,
		UserID:        updated.UserID,
		OldStatus:     domain.StatusRequested,
		NewStatus:     domain.StatusPaymentPending,
		Actor:         events.ActorOperator,
		OccurredAt:    now,
	})

	return &Response{
		ID:              updated.ID,
		UserID:          updated.UserID,
		CourtID:         updated.CourtID,
		Status:          string(updated.Status),
		ApprovedAt:      *updated.ApprovedAt,
		PaymentDeadline: deadline,
	}, nil
}
