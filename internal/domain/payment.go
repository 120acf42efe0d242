package domain

import "time"

// PaymentOutcome represents the outcome recorded in the payment ledger
type PaymentOutcome string

const (
	OutcomeSettled PaymentOutcome = "settled"
	OutcomeVoided  PaymentOutcome = "voided"
)

// Методы, записываемые системой (не платёжными провайдерами)
const (
	MethodUserRequest   = "User Request"   // отмена по инициативе пользователя
	MethodSystemTimeout = "System Timeout" // истечение платёжного окна
)

// PaymentRecord is an append-only ledger entry.
// Создаётся один раз, когда бронирование становится paid либо отменяется
// после пребывания в payment_pending. Никогда не изменяется.
type PaymentRecord struct {
	ID            string // uuid
	ReservationID int64
	Amount        float64
	Outcome       PaymentOutcome
	Method        string
	RecordedAt    time.Time
}
