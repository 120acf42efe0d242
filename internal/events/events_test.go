package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/events"
)

func TestBus_PublishDeliversToAllSubscribers(t *testing.T) {
	bus := events.NewBus()
	first := bus.Subscribe(4)
	second := bus.Subscribe(4)

	ev := events.TransitionEvent{
		ReservationID: 42,
		UserID:        7,
		OldStatus:     domain.StatusRequested,
		NewStatus:     domain.StatusPaymentPending,
		Actor:         events.ActorOperator,
		OccurredAt:    time.Now(),
	}
	bus.Publish(ev)

	select {
	case got := <-first:
		assert.Equal(t, ev, got)
	default:
		t.Fatal("первый подписчик не получил событие")
	}
	select {
	case got := <-second:
		assert.Equal(t, ev, got)
	default:
		t.Fatal("второй подписчик не получил событие")
	}
}

func TestBus_PublishDoesNotBlockOnFullBuffer(t *testing.T) {
	bus := events.NewBus()
	bus.Subscribe(1)

	bus.Publish(events.TransitionEvent{ReservationID: 1})
	// Буфер заполнен - следующие события отбрасываются, Publish не блокируется
	bus.Publish(events.TransitionEvent{ReservationID: 2})
	bus.Publish(events.TransitionEvent{ReservationID: 3})

	assert.Equal(t, int64(2), bus.Dropped())
}

func TestBus_SubscribeDefaultBuffer(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe(0)

	require.NotNil(t, ch)
	assert.Equal(t, 64, cap(ch))
}

func TestBus_Close(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe(1)

	bus.Close()

	_, open := <-ch
	assert.False(t, open)

	// Publish после Close не паникует и не считается отброшенным
	bus.Publish(events.TransitionEvent{ReservationID: 1})
	assert.Equal(t, int64(0), bus.Dropped())

	// Повторный Close безопасен
	bus.Close()
}
