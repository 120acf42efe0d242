package dispatcher

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/events"
)

// Dispatcher подписчик шины событий, сохраняющий уведомления.
// Работает в режиме fire-and-forget: ошибка записи уведомления логируется
// и проглатывается, переход статуса она не откатывает и не блокирует.
type Dispatcher struct {
	repo   NotificationRepository
	logger Logger
}

// New создает новый диспетчер уведомлений
func New(repo NotificationRepository, logger Logger) *Dispatcher {
	return &Dispatcher{
		repo:   repo,
		logger: logger,
	}
}

// Run обрабатывает события из канала до его закрытия или отмены контекста.
// Запускается отдельной горутиной из main.
func (d *Dispatcher) Run(ctx context.Context, ch <-chan events.TransitionEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			d.handle(ctx, ev)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, ev events.TransitionEvent) {
	notifications := BuildNotifications(ev)
	for i := range notifications {
		notifications[i].ID = uuid.NewString()

		if err := d.repo.Create(ctx, &notifications[i]); err != nil {
			d.logger.Error("Dispatcher: failed to store notification for reservation id=%d (%s/%s): %v",
				ev.ReservationID, notifications[i].Audience, notifications[i].Title, err)
			continue
		}
	}

	if len(notifications) > 0 {
		d.logger.Info("Dispatcher: stored %d notification(s) for reservation id=%d (%s -> %s)",
			len(notifications), ev.ReservationID, ev.OldStatus, ev.NewStatus)
	}
}

// AuditObserver второй подписчик шины, пишущий переходы в журнал
type AuditObserver struct {
	logger Logger
}

// NewAuditObserver создает наблюдателя аудита переходов
func NewAuditObserver(logger Logger) *AuditObserver {
	return &AuditObserver{logger: logger}
}

// Run логирует события из канала до его закрытия или отмены контекста
func (a *AuditObserver) Run(ctx context.Context, ch <-chan events.TransitionEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			a.logger.Info("[AUDIT] reservation id=%d: %s -> %s (actor=%s, reason=%q)",
				ev.ReservationID, ev.OldStatus, ev.NewStatus, ev.Actor, ev.Reason)
		}
	}
}
