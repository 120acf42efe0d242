package slotcalendar

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// SlotStatus статус часового слота, вычисленный из расписания площадки.
// Не зависит от существующих бронирований: отвечает на вопрос
// "может ли этот слот в принципе быть забронирован".
type SlotStatus string

const (
	StatusOpen   SlotStatus = "open"
	StatusBreak  SlotStatus = "break"
	StatusClosed SlotStatus = "closed"
)

// HourSlot один часовой слот дня
type HourSlot struct {
	Hour   int
	Status SlotStatus
}

// Enumerate перечисляет часовые слоты площадки на дату в порядке возрастания.
// Возвращает по одному слоту на каждый час интервала [OpenHour, CloseHour).
// Если дата полностью закрыта (еженедельный выходной или конкретная закрытая
// дата), возвращает пустой список.
func Enumerate(cfg domain.ScheduleConfig, date time.Time) []HourSlot {
	if cfg.IsClosedOn(date) {
		return []HourSlot{}
	}

	slots := make([]HourSlot, 0, cfg.CloseHour-cfg.OpenHour)
	for hour := cfg.OpenHour; hour < cfg.CloseHour; hour++ {
		status := StatusOpen
		if cfg.IsBreakHour(hour) {
			status = StatusBreak
		}
		slots = append(slots, HourSlot{Hour: hour, Status: status})
	}
	return slots
}

// StatusOf возвращает статус конкретного часа.
// Часы вне рабочего интервала считаются закрытыми.
func StatusOf(cfg domain.ScheduleConfig, date time.Time, hour int) SlotStatus {
	if cfg.IsClosedOn(date) {
		return StatusClosed
	}
	if hour < cfg.OpenHour || hour >= cfg.CloseHour {
		return StatusClosed
	}
	if cfg.IsBreakHour(hour) {
		return StatusBreak
	}
	return StatusOpen
}

// HourRange непрерывный диапазон часов с одинаковым статусом
type HourRange struct {
	StartHour int // включительно
	EndHour   int // не включительно
	Status    SlotStatus
}

// MergeRanges склеивает соседние слоты с одинаковым статусом в диапазоны
// для отображения ("18.00 - 21.00"). Чисто косметическая операция:
// движок бронирования всегда оперирует отдельными часами.
func MergeRanges(slots []HourSlot) []HourRange {
	ranges := make([]HourRange, 0)
	for _, s := range slots {
		n := len(ranges)
		if n > 0 && ranges[n-1].Status == s.Status && ranges[n-1].EndHour == s.Hour {
			ranges[n-1].EndHour = s.Hour + 1
			continue
		}
		ranges = append(ranges, HourRange{StartHour: s.Hour, EndHour: s.Hour + 1, Status: s.Status})
	}
	return ranges
}
