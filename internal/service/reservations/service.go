package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service сервис для чтения броней
type Service struct {
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(reservationRepo ReservationRepository, logger Logger) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// GetByID получает бронь по ID.
// Пользователь видит только свою бронь, оператор - любую.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isOperator bool) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isOperator && reservation.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// ListUserReservations получает историю броней пользователя.
// Опционально фильтрует по статусу.
func (s *Service) ListUserReservations(ctx context.Context, req *models.ListUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.ListByUser(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("ListUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListUserReservations: fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// ListCourtReservations получает брони корта с фильтрацией по дате и статусу.
// Используется операторами для просмотра загрузки корта.
func (s *Service) ListCourtReservations(ctx context.Context, req *models.ListCourtReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListCourtReservations: fetching reservations for court=%d", req.CourtID)

	if req.CourtID <= 0 {
		return nil, fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListCourtReservations: invalid filter for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.ListByCourtAndDate(ctx, filter)
	if err != nil {
		s.logger.Error("ListCourtReservations: repository error for court=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: ListCourtReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListCourtReservations: fetched %d reservations for court=%d", len(reservations), req.CourtID)
	return models.FromDomainReservationList(reservations), nil
}
