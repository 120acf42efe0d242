package models

// Статусы часового слота в ответе
const (
	SlotStatusOpen    = "open"    // слот свободен для бронирования
	SlotStatusClaimed = "claimed" // слот занят активной бронью
	SlotStatusBreak   = "break"   // технический перерыв
)

// SlotResponse состояние одного часового слота
type SlotResponse struct {
	Hour   int    `json:"hour"`   // начало слота, 0-23
	Status string `json:"status"` // open | claimed | break
}

// DaySlotsResponse состояние всех слотов корта на дату
type DaySlotsResponse struct {
	CourtID int64          `json:"courtId"`
	Date    string         `json:"date"` // "2025-10-15"
	Closed  bool           `json:"closed"`
	Slots   []SlotResponse `json:"slots"`
}
