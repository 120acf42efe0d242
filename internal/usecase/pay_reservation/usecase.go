package pay_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/events"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
)

// UseCase use case для оплаты брони
type UseCase struct {
	reservationRepo ReservationRepository
	paymentRepo     PaymentRepository
	registry        ProcessorRegistry
	scheduler       ExpirationScheduler
	expirer         Expirer
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	paymentRepo PaymentRepository,
	registry ProcessorRegistry,
	scheduler ExpirationScheduler,
	expirer Expirer,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		registry:        registry,
		scheduler:       scheduler,
		expirer:         expirer,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case оплаты брони.
// Платежный шлюз вызывается без блокировок БД, итоговый переход
// payment_pending -> paid выполняется условным UPDATE: из гонки
// оплаты и таймаута побеждает ровно один.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("PayReservation: reservation=%d, user=%d, method=%s",
		req.ReservationID, req.UserID, req.Method)

	// 1. Валидация входных данных
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.Method == "" {
		return nil, fmt.Errorf("%w: payment method is required", ErrInvalidInput)
	}

	// 2. Получаем платежный метод из реестра
	processor, err := uc.registry.Get(req.Method)
	if err != nil {
		uc.logger.Warn("PayReservation: unknown payment method %q", req.Method)
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, req.Method)
	}

	// 3. Получаем бронь и проверяем владельца и статус
	existing, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("PayReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("PayReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if existing.UserID != req.UserID {
		uc.logger.Warn("PayReservation: user id=%d is not the owner of reservation id=%d",
			req.UserID, req.ReservationID)
		return nil, ErrAccessDenied
	}

	if existing.Status != domain.StatusPaymentPending {
		uc.logger.Warn("PayReservation: reservation id=%d is in status %s", existing.ID, existing.Status)
		return nil, fmt.Errorf("%w: current status is %s", ErrNotPayable, existing.Status)
	}

	now := uc.timeProvider.Now()

	// 4. Проверяем окно оплаты до обращения к шлюзу
	if deadline, ok := existing.PaymentDeadline(); ok && !now.Before(deadline) {
		uc.logger.Warn("PayReservation: payment window for reservation id=%d expired at %s",
			existing.ID, deadline.Format("15:04:05"))
		// Просроченную бронь закрываем сразу, не дожидаясь планировщика
		if err := uc.expirer.Expire(ctx, existing.ID); err != nil {
			uc.logger.Warn("PayReservation: failed to expire overdue reservation id=%d: %v", existing.ID, err)
		}
		return nil, ErrWindowExpired
	}

	// 5. Обрабатываем платеж вне блокировок БД
	receipt, err := processor.Process(ctx, existing.TotalPrice)
	if err != nil {
		uc.logger.Error("PayReservation: processor %s failed for reservation id=%d: %v",
			processor.Name(), existing.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	// 6. Фиксируем переход payment_pending -> paid условным обновлением.
	// Пока шлюз работал, бронь могла истечь или быть отмененной.
	updated, err := uc.reservationRepo.MarkPaid(ctx, existing.ID, now.Add(-domain.PaymentWindow))
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNoTransition) {
			uc.logger.Warn("PayReservation: reservation id=%d resolved concurrently, payment not applied",
				existing.ID)
			return nil, uc.classifyNoTransition(ctx, existing.ID)
		}
		uc.logger.Error("PayReservation: failed to mark reservation id=%d paid: %v", existing.ID, err)
		return nil, fmt.Errorf("%w: failed to mark reservation paid: %v", ErrInternal, err)
	}

	// 7. Снимаем дедлайн и фиксируем успешный платеж в журнале
	uc.scheduler.Deregister(updated.ID)

	record := &domain.PaymentRecord{
		ID:            uuid.NewString(),
		ReservationID: updated.ID,
		Amount:        receipt.Amount,
		Outcome:       domain.OutcomeSettled,
		Method:        receipt.Method,
		RecordedAt:    receipt.ProcessedAt,
	}

	uc.createPaymentRecord(ctx, record)

	uc.logger.Info("PayReservation: reservation id=%d paid via %s, amount=%.2f",
		updated.ID, receipt.Method, receipt.Amount)

	// 8. Публикуем событие перехода
	uc.publisher.Publish(events.TransitionEvent{
		ReservationID: updated.ID,
		UserID:        updated.UserID,
		OldStatus:     domain.StatusPaymentPending,
		NewStatus:     domain.StatusPaid,
		Actor:         events.ActorRequester,
		OccurredAt:    now,
	})

	return &Response{
		ID:          updated.ID,
		UserID:      updated.UserID,
		Status:      string(updated.Status),
		Amount:      receipt.Amount,
		Method:      receipt.Method,
		ProcessedAt: receipt.ProcessedAt,
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
		uc.logger.Warn("PayReservation: attempt %d/%d to record payment for reservation id=%d failed: %v",
			attempt, paymentRecordAttempts, record.ReservationID, err)
	}
	uc.logger.Error("PayReservation: payment ledger entry lost for reservation id=%d: %v",
		record.ReservationID, err)
}

// classifyNoTransition разбирает, почему условное обновление не прошло
func (uc *UseCase) classifyNoTransition(ctx context.Context, id int64) error {
	existing, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if existing.Status == domain.StatusCancelled {
		return ErrWindowExpired
	}

	return fmt.Errorf("%w: current status is %s", ErrNotPayable, existing.Status)
}
