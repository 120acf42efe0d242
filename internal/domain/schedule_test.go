package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

func validConfig() domain.ScheduleConfig {
	return domain.ScheduleConfig{
		FieldID:        1,
		OpenHour:       8,
		CloseHour:      22,
		BreakHours:     []int{12, 13},
		ClosedWeekdays: []int{0},
		ClosedDates: []time.Time{
			time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestScheduleConfig_Validate(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestScheduleConfig_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ScheduleConfig)
	}{
		{"open after close", func(c *domain.ScheduleConfig) { c.OpenHour = 22; c.CloseHour = 8 }},
		{"open equals close", func(c *domain.ScheduleConfig) { c.OpenHour = 10; c.CloseHour = 10 }},
		{"negative open hour", func(c *domain.ScheduleConfig) { c.OpenHour = -1 }},
		{"close hour above 24", func(c *domain.ScheduleConfig) { c.CloseHour = 25 }},
		{"break before open", func(c *domain.ScheduleConfig) { c.BreakHours = []int{7} }},
		{"break at close", func(c *domain.ScheduleConfig) { c.BreakHours = []int{22} }},
		{"weekday out of range", func(c *domain.ScheduleConfig) { c.ClosedWeekdays = []int{7} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestScheduleConfig_IsClosedOn(t *testing.T) {
	cfg := validConfig()

	// воскресенье - закрытый день недели
	assert.True(t, cfg.IsClosedOn(time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC)))

	// конкретная закрытая дата
	assert.True(t, cfg.IsClosedOn(time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)))

	// обычный четверг
	assert.False(t, cfg.IsClosedOn(time.Date(2025, 12, 11, 0, 0, 0, 0, time.UTC)))
}

func TestScheduleConfig_IsBreakHour(t *testing.T) {
	cfg := validConfig()

	assert.True(t, cfg.IsBreakHour(12))
	assert.True(t, cfg.IsBreakHour(13))
	assert.False(t, cfg.IsBreakHour(11))
	assert.False(t, cfg.IsBreakHour(14))
}
