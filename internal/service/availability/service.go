package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/internal/service/availability/models"
	"github.com/m04kA/SMC-ReservationService/internal/slotcalendar"
)

// Service сервис для просмотра доступности слотов
type Service struct {
	reservationRepo ReservationRepository
	scheduleRepo    ScheduleRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	reservationRepo ReservationRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		scheduleRepo:    scheduleRepo,
		logger:          logger,
	}
}

// GetDaySlots возвращает состояние всех часовых слотов корта на дату.
// Перерывы помечаются break, занятые активными бронями часы - claimed.
func (s *Service) GetDaySlots(ctx context.Context, courtID int64, date time.Time) (*models.DaySlotsResponse, error) {
	s.logger.Info("GetDaySlots: court=%d, date=%s", courtID, date.Format(domain.DateFormat))

	if courtID <= 0 {
		return nil, fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	schedule, err := s.scheduleRepo.GetByCourtID(ctx, courtID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetDaySlots: court id=%d not found", courtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("GetDaySlots: failed to get schedule for court id=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: GetDaySlots - failed to get schedule: %v", ErrInternal, err)
	}

	response := &models.DaySlotsResponse{
		CourtID: courtID,
		Date:    date.Format(domain.DateFormat),
		Slots:   make([]models.SlotResponse, 0),
	}

	// В закрытый день слоты не перечисляем
	if schedule.IsClosedOn(date) {
		response.Closed = true
		return response, nil
	}

	filter := domain.ReservationFilter{
		CourtID:      courtID,
		Date:         &date,
		OnlyClaiming: true,
	}

	reservations, err := s.reservationRepo.ListByCourtAndDate(ctx, filter)
	if err != nil {
		s.logger.Error("GetDaySlots: failed to list reservations for court id=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: GetDaySlots - failed to list reservations: %v", ErrInternal, err)
	}

	for _, slot := range slotcalendar.Enumerate(*schedule, date) {
		status := models.SlotStatusOpen

		switch slot.Status {
		case slotcalendar.StatusBreak:
			status = models.SlotStatusBreak
		case slotcalendar.StatusOpen:
			if isClaimed(slot.Hour, reservations) {
				status = models.SlotStatusClaimed
			}
		}

		response.Slots = append(response.Slots, models.SlotResponse{
			Hour:   slot.Hour,
			Status: status,
		})
	}

	return response, nil
}

// isClaimed проверяет, занят ли час активной бронью
func isClaimed(hour int, reservations []*domain.Reservation) bool {
	for _, reservation := range reservations {
		if reservation.IsClaiming() && reservation.ClaimsHour(hour) {
			return true
		}
	}
	return false
}
