package domain

import "time"

// Court represents a single bookable court that belongs to a field.
// Расписание (ScheduleConfig) задаётся на уровне площадки, корт наследует его.
type Court struct {
	ID           int64
	FieldID      int64
	Name         string
	PricePerHour float64
	CourtType    string // futsal, badminton, ...

	CreatedAt time.Time
	UpdatedAt time.Time
}
