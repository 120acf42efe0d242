package reject_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/events"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

// UseCase use case для отклонения брони оператором
type UseCase struct {
	reservationRepo ReservationRepository
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case отклонения брони.
// Отклонить можно только бронь в статусе requested, причина обязательна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RejectReservation: reservation=%d", req.ReservationID)

	// 1. Валидация входных данных
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		uc.logger.Warn("RejectReservation: empty reason for reservation id=%d", req.ReservationID)
		return nil, ErrEmptyReason
	}

	if len(reason) > domain.MaxStatusMessageLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxStatusMessageLength)
	}

	// 2. Переводим бронь в cancelled условным обновлением из requested
	updated, err := uc.reservationRepo.Cancel(ctx, req.ReservationID,
		[]domain.ReservationStatus{domain.StatusRequested}, reason)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNoTransition) {
			existing, getErr := uc.reservationRepo.GetByID(ctx, req.ReservationID)
			if getErr != nil {
				if errors.Is(getErr, reservationRepo.ErrReservationNotFound) {
					uc.logger.Warn("RejectReservation: reservation id=%d not found", req.ReservationID)
					return nil, ErrReservationNotFound
				}
				uc.logger.Error("RejectReservation: failed to get reservation id=%d: %v", req.ReservationID, getErr)
				return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, getErr)
			}
			uc.logger.Warn("RejectReservation: reservation id=%d is in status %s", req.ReservationID, existing.Status)
			return nil, fmt.Errorf("%w: current status is %s", ErrInvalidStatus, existing.Status)
		}
		uc.logger.Error("RejectReservation: failed to reject reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to reject reservation: %v", ErrInternal, err)
	}

	uc.logger.Info("RejectReservation: reservation id=%d rejected: %s", updated.ID, reason)

	// 3. Публикуем событие перехода
	uc.publisher.Publish(events.TransitionEvent{
		ReservationID: updated.ID,
		UserID:        updated.UserID,
		OldStatus:     domain.StatusRequested,
		NewStatus:     domain.StatusCancelled,
		Actor:         events.ActorOperator,
		Reason:        reason,
		OccurredAt:    uc.timeProvider.Now(),
	})

	return &Response{
		ID:            updated.ID,
		UserID:        updated.UserID,
		Status:        string(updated.Status),
		StatusMessage: reason,
	}, nil
}
