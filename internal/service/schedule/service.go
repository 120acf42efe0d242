package schedule

import (
	"context"
	"errors"
	"fmt"

	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ReservationService/internal/service/schedule/models"
)

// Service сервис для управления расписаниями площадок
type Service struct {
	scheduleRepo ScheduleRepository
	courtRepo    CourtRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, courtRepo CourtRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		courtRepo:    courtRepo,
		logger:       logger,
	}
}

// GetSchedule получает расписание площадки вместе со списком ее кортов
func (s *Service) GetSchedule(ctx context.Context, fieldID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: field=%d", fieldID)

	if fieldID <= 0 {
		return nil, fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}

	cfg, err := s.scheduleRepo.GetByFieldID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetSchedule: field id=%d not found", fieldID)
			return nil, ErrFieldNotFound
		}
		s.logger.Error("GetSchedule: repository error for field id=%d: %v", fieldID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	courts, err := s.courtRepo.ListByFieldID(ctx, fieldID)
	if err != nil {
		s.logger.Error("GetSchedule: failed to list courts for field id=%d: %v", fieldID, err)
		return nil, fmt.Errorf("%w: GetSchedule - failed to list courts: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(cfg, courts), nil
}

// UpdateSchedule обновляет расписание площадки.
// Уже существующие брони на часы, ставшие недоступными, не трогаем:
// новое расписание действует только на новые брони.
func (s *Service) UpdateSchedule(ctx context.Context, fieldID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: field=%d, open=%d, close=%d", fieldID, req.OpenHour, req.CloseHour)

	if fieldID <= 0 {
		return nil, fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}

	cfg, err := req.ToDomainSchedule(fieldID)
	if err != nil {
		s.logger.Warn("UpdateSchedule: invalid request for field id=%d: %v", fieldID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := cfg.Validate(); err != nil {
		s.logger.Warn("UpdateSchedule: invalid schedule for field id=%d: %v", fieldID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	if err := s.scheduleRepo.Update(ctx, cfg); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("UpdateSchedule: field id=%d not found", fieldID)
			return nil, ErrFieldNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for field id=%d: %v", fieldID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	// Перечитываем расписание, чтобы вернуть актуальный updated_at
	return s.GetSchedule(ctx, fieldID)
}
