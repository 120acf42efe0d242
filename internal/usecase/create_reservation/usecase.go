package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/events"
	courtRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/court"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/internal/slotcalendar"
)

// UseCase use case для создания брони
type UseCase struct {
	reservationRepo ReservationRepository
	courtRepo       CourtRepository
	scheduleRepo    ScheduleRepository
	txManager       TransactionManager
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	courtRepo CourtRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		courtRepo:       courtRepo,
		scheduleRepo:    scheduleRepo,
		txManager:       txManager,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания брони
// Использует сериализуемую транзакцию для предотвращения двойного бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, court=%d, date=%s, hours=%v",
		req.UserID, req.CourtID, req.Date.Format(domain.DateFormat), req.Hours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что дата не в прошлом
	if err := validateDateNotPast(req.Date, now); err != nil {
		uc.logger.Warn("CreateReservation: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	hours := normalizeHours(req.Hours)

	// 4. Получаем корт (вне транзакции, данные корта меняются редко)
	court, err := uc.courtRepo.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, courtRepo.ErrCourtNotFound) {
			uc.logger.Warn("CreateReservation: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("CreateReservation: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	// 5. Сверяем цену клиента с серверной, если клиент ее прислал
	expectedPrice := court.PricePerHour * float64(len(hours))
	if err := validateTotalPrice(req.TotalPrice, expectedPrice); err != nil {
		uc.logger.Warn("CreateReservation: client price %.2f does not match server price %.2f for court id=%d",
			req.TotalPrice, expectedPrice, req.CourtID)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Reservation

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем расписание площадки корта
		schedule, err := uc.scheduleRepo.GetByCourtID(txCtx, req.CourtID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("CreateReservation: no schedule for court id=%d", req.CourtID)
				return ErrCourtNotFound
			}
			uc.logger.Error("CreateReservation: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 6.2. Проверяем, что площадка открыта в указанную дату
		if schedule.IsClosedOn(req.Date) {
			uc.logger.Warn("CreateReservation: field id=%d is closed on %s",
				schedule.FieldID, req.Date.Format(domain.DateFormat))
			return ErrDateClosed
		}

		// 6.3. Проверяем, что каждый час открыт для бронирования
		for _, hour := range hours {
			if slotcalendar.StatusOf(*schedule, req.Date, hour) != slotcalendar.StatusOpen {
				uc.logger.Warn("CreateReservation: hour %d is not bookable on court id=%d", hour, req.CourtID)
				return fmt.Errorf("%w: hour %d", ErrHourUnavailable, hour)
			}
		}

		// 6.4. Получаем активные брони корта на дату с блокировкой (FOR UPDATE)
		filter := domain.ReservationFilter{
			CourtID:      req.CourtID,
			Date:         &req.Date,
			OnlyClaiming: true,
		}

		reservations, err := uc.reservationRepo.ListByCourtAndDate(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list reservations: %v", err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}

		// 6.5. Проверяем пересечение часов с активными бронями
		if claimed := findClaimedHours(hours, reservations); len(claimed) > 0 {
			uc.logger.Warn("CreateReservation: hours %v already claimed on court id=%d date=%s",
				claimed, req.CourtID, req.Date.Format(domain.DateFormat))
			return fmt.Errorf("%w: hours %v", ErrSlotConflict, claimed)
		}

		// 6.6. Создаем бронь в статусе requested
		reservation := &domain.Reservation{
			UserID:     req.UserID,
			CourtID:    req.CourtID,
			Date:       req.Date,
			Hours:      hours,
			TotalPrice: expectedPrice,
			Status:     domain.StatusRequested,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, price=%.2f",
		result.ID, result.TotalPrice)

	// 7. Публикуем событие для аудита (уведомлений на этом переходе нет)
	uc.publisher.Publish(events.TransitionEvent{
		ReservationID: result.ID,
		UserID:        result.UserID,
		NewStatus:     domain.StatusRequested,
		Actor:         events.ActorRequester,
		OccurredAt:    now,
	})

	return &Response{
		ID:         result.ID,
		UserID:     result.UserID,
		CourtID:    result.CourtID,
		Date:       result.Date,
		Hours:      result.Hours,
		TotalPrice: result.TotalPrice,
		Status:     string(result.Status),
		CreatedAt:  result.CreatedAt,
	}, nil
}
