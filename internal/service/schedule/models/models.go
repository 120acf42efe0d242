package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// UpdateScheduleRequest запрос на обновление расписания площадки
type UpdateScheduleRequest struct {
	OpenHour       int      `json:"openHour"`
	CloseHour      int      `json:"closeHour"`
	BreakHours     []int    `json:"breakHours"`
	ClosedWeekdays []int    `json:"closedWeekdays"`
	ClosedDates    []string `json:"closedDates"` // "2025-12-25"
}

// ToDomainSchedule конвертирует request в domain конфигурацию
func (r *UpdateScheduleRequest) ToDomainSchedule(fieldID int64) (*domain.ScheduleConfig, error) {
	closedDates := make([]time.Time, 0, len(r.ClosedDates))
	for _, s := range r.ClosedDates {
		d, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, fmt.Errorf("invalid closed date %q", s)
		}
		closedDates = append(closedDates, d)
	}

	return &domain.ScheduleConfig{
		FieldID:        fieldID,
		OpenHour:       r.OpenHour,
		CloseHour:      r.CloseHour,
		BreakHours:     r.BreakHours,
		ClosedWeekdays: r.ClosedWeekdays,
		ClosedDates:    closedDates,
	}, nil
}

// Response модели

// CourtResponse данные корта площадки
type CourtResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	PricePerHour float64 `json:"pricePerHour"`
	CourtType    string  `json:"courtType"`
}

// ScheduleResponse ответ с расписанием площадки
type ScheduleResponse struct {
	FieldID        int64           `json:"fieldId"`
	OpenHour       int             `json:"openHour"`
	CloseHour      int             `json:"closeHour"`
	BreakHours     []int           `json:"breakHours"`
	ClosedWeekdays []int           `json:"closedWeekdays"`
	ClosedDates    []string        `json:"closedDates"`
	Courts         []CourtResponse `json:"courts"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// FromDomainSchedule конвертирует domain конфигурацию в DTO
func FromDomainSchedule(cfg *domain.ScheduleConfig, courts []*domain.Court) *ScheduleResponse {
	closedDates := make([]string, 0, len(cfg.ClosedDates))
	for _, d := range cfg.ClosedDates {
		closedDates = append(closedDates, d.Format(domain.DateFormat))
	}

	courtResponses := make([]CourtResponse, 0, len(courts))
	for _, c := range courts {
		courtResponses = append(courtResponses, CourtResponse{
			ID:           c.ID,
			Name:         c.Name,
			PricePerHour: c.PricePerHour,
			CourtType:    c.CourtType,
		})
	}

	return &ScheduleResponse{
		FieldID:        cfg.FieldID,
		OpenHour:       cfg.OpenHour,
		CloseHour:      cfg.CloseHour,
		BreakHours:     cfg.BreakHours,
		ClosedWeekdays: cfg.ClosedWeekdays,
		ClosedDates:    closedDates,
		Courts:         courtResponses,
		UpdatedAt:      cfg.UpdatedAt,
	}
}
