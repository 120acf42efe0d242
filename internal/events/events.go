package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Actor инициатор перехода статуса
type Actor string

const (
	ActorRequester Actor = "requester"
	ActorOperator  Actor = "operator"
	ActorSystem    Actor = "system"
)

// TransitionEvent событие совершённого перехода статуса бронирования.
// Публикуется движком после коммита транзакции; подписчики (диспетчер
// уведомлений, аудит) не имеют обратной связи с движком.
type TransitionEvent struct {
	ReservationID int64
	UserID        int64
	OldStatus     domain.ReservationStatus
	NewStatus     domain.ReservationStatus
	Actor         Actor
	Reason        string
	OccurredAt    time.Time
}

// Bus односторонняя шина событий переходов.
// Publish никогда не блокируется: при переполнении буфера подписчика
// событие отбрасывается (потеря уведомления допустима, потеря
// закоммиченного состояния - нет).
type Bus struct {
	mu          sync.RWMutex
	subscribers []chan TransitionEvent
	closed      bool

	dropped atomic.Int64
}

// NewBus создает новую шину событий
func NewBus() *Bus {
	return &Bus{
		subscribers: make([]chan TransitionEvent, 0),
	}
}

// Subscribe регистрирует нового подписчика и возвращает его канал
func (b *Bus) Subscribe(buffer int) <-chan TransitionEvent {
	if buffer <= 0 {
		buffer = 64
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan TransitionEvent, buffer)
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Publish рассылает событие всем подписчикам без блокировки
func (b *Bus) Publish(ev TransitionEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
			b.dropped.Add(1)
		}
	}
}

// Dropped возвращает количество отброшенных событий
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

// Close закрывает каналы подписчиков. Publish после Close игнорируется.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subscribers {
		close(ch)
	}
}
