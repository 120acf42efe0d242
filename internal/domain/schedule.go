package domain

import (
	"fmt"
	"time"
)

// ScheduleConfig describes the operating calendar of a field (a court-owning venue):
// daily open hours, recurring break hours, weekly closed days and one-off holidays.
type ScheduleConfig struct {
	FieldID   int64
	OpenHour  int // включительно
	CloseHour int // не включительно, полуоткрытый интервал [OpenHour, CloseHour)

	// Часы внутри рабочего интервала, в которые бронирование недоступно (перерыв)
	BreakHours []int

	// Дни недели, в которые площадка закрыта каждую неделю (0 = воскресенье .. 6 = суббота)
	ClosedWeekdays []int

	// Конкретные закрытые даты (праздники, ремонт)
	ClosedDates []time.Time

	UpdatedAt time.Time
}

// Validate проверяет инварианты конфигурации расписания
func (c *ScheduleConfig) Validate() error {
	if c.OpenHour < MinDayHour || c.OpenHour > MaxDayHour {
		return fmt.Errorf("open hour %d is out of range [%d, %d]", c.OpenHour, MinDayHour, MaxDayHour)
	}
	if c.CloseHour < MinDayHour || c.CloseHour > MaxDayHour+1 {
		return fmt.Errorf("close hour %d is out of range [%d, %d]", c.CloseHour, MinDayHour, MaxDayHour+1)
	}
	if c.OpenHour >= c.CloseHour {
		return fmt.Errorf("open hour %d must be before close hour %d", c.OpenHour, c.CloseHour)
	}
	for _, h := range c.BreakHours {
		// Перерыв должен лежать строго внутри рабочего интервала
		if h < c.OpenHour || h >= c.CloseHour {
			return fmt.Errorf("break hour %d is outside working hours [%d, %d)", h, c.OpenHour, c.CloseHour)
		}
	}
	for _, d := range c.ClosedWeekdays {
		if d < 0 || d > 6 {
			return fmt.Errorf("closed weekday %d is out of range [0, 6]", d)
		}
	}
	return nil
}

// IsClosedOn returns true if the whole date is closed (recurring weekday or specific date)
func (c *ScheduleConfig) IsClosedOn(date time.Time) bool {
	weekday := int(date.Weekday())
	for _, d := range c.ClosedWeekdays {
		if d == weekday {
			return true
		}
	}
	y, m, day := date.Date()
	for _, closed := range c.ClosedDates {
		cy, cm, cd := closed.Date()
		if y == cy && m == cm && day == cd {
			return true
		}
	}
	return false
}

// IsBreakHour returns true if the hour is a break hour
func (c *ScheduleConfig) IsBreakHour(hour int) bool {
	for _, h := range c.BreakHours {
		if h == hour {
			return true
		}
	}
	return false
}
