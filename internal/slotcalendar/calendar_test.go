package slotcalendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/slotcalendar"
)

func testConfig() domain.ScheduleConfig {
	return domain.ScheduleConfig{
		FieldID:        1,
		OpenHour:       8,
		CloseHour:      22,
		BreakHours:     []int{12, 13},
		ClosedWeekdays: []int{1}, // понедельник
		ClosedDates: []time.Time{
			time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestEnumerate_OpenDay(t *testing.T) {
	// вторник
	date := time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC)

	slots := slotcalendar.Enumerate(testConfig(), date)

	require.Len(t, slots, 14)
	assert.Equal(t, 8, slots[0].Hour)
	assert.Equal(t, 21, slots[len(slots)-1].Hour)

	for _, s := range slots {
		switch s.Hour {
		case 12, 13:
			assert.Equal(t, slotcalendar.StatusBreak, s.Status, "hour %d", s.Hour)
		default:
			assert.Equal(t, slotcalendar.StatusOpen, s.Status, "hour %d", s.Hour)
		}
	}

	// Слоты идут по возрастанию
	for i := 1; i < len(slots); i++ {
		assert.Equal(t, slots[i-1].Hour+1, slots[i].Hour)
	}
}

func TestEnumerate_RecurringClosedWeekday(t *testing.T) {
	// понедельник
	date := time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC)

	slots := slotcalendar.Enumerate(testConfig(), date)

	assert.Empty(t, slots)
}

func TestEnumerate_SpecificClosedDate(t *testing.T) {
	date := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

	slots := slotcalendar.Enumerate(testConfig(), date)

	assert.Empty(t, slots)
}

func TestStatusOf(t *testing.T) {
	cfg := testConfig()
	open := time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC)
	closed := time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, slotcalendar.StatusOpen, slotcalendar.StatusOf(cfg, open, 10))
	assert.Equal(t, slotcalendar.StatusBreak, slotcalendar.StatusOf(cfg, open, 12))
	assert.Equal(t, slotcalendar.StatusClosed, slotcalendar.StatusOf(cfg, open, 7))
	assert.Equal(t, slotcalendar.StatusClosed, slotcalendar.StatusOf(cfg, open, 22))
	assert.Equal(t, slotcalendar.StatusClosed, slotcalendar.StatusOf(cfg, closed, 10))
}

func TestMergeRanges(t *testing.T) {
	slots := []slotcalendar.HourSlot{
		{Hour: 8, Status: slotcalendar.StatusOpen},
		{Hour: 9, Status: slotcalendar.StatusOpen},
		{Hour: 10, Status: slotcalendar.StatusBreak},
		{Hour: 11, Status: slotcalendar.StatusOpen},
	}

	ranges := slotcalendar.MergeRanges(slots)

	require.Len(t, ranges, 3)
	assert.Equal(t, slotcalendar.HourRange{StartHour: 8, EndHour: 10, Status: slotcalendar.StatusOpen}, ranges[0])
	assert.Equal(t, slotcalendar.HourRange{StartHour: 10, EndHour: 11, Status: slotcalendar.StatusBreak}, ranges[1])
	assert.Equal(t, slotcalendar.HourRange{StartHour: 11, EndHour: 12, Status: slotcalendar.StatusOpen}, ranges[2])
}

func TestMergeRanges_DoesNotMergeGaps(t *testing.T) {
	// Несмежные часы одного статуса остаются отдельными диапазонами
	slots := []slotcalendar.HourSlot{
		{Hour: 8, Status: slotcalendar.StatusOpen},
		{Hour: 10, Status: slotcalendar.StatusOpen},
	}

	ranges := slotcalendar.MergeRanges(slots)

	require.Len(t, ranges, 2)
}
