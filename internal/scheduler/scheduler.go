package scheduler

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultTickInterval период проверки зарегистрированных дедлайнов
	DefaultTickInterval = 1 * time.Second

	// DefaultSweepInterval период страховочного обхода БД на случай
	// потерянных дедлайнов (рестарт между Recover и Register)
	DefaultSweepInterval = 1 * time.Minute
)

// ExpirationScheduler следит за дедлайнами оплаты и закрывает брони,
// не оплаченные в отведенное окно.
//
// Дедлайны хранятся в памяти: Recover восстанавливает их из БД после
// рестарта, а периодический sweep подбирает то, что осталось без записи.
type ExpirationScheduler struct {
	reservationRepo ReservationRepository
	expirer         Expirer
	timeProvider    TimeProvider
	logger          Logger

	tickInterval  time.Duration
	sweepInterval time.Duration

	mu       sync.Mutex
	entries  map[int64]time.Time // reservationID -> дедлайн оплаты
	inFlight map[int64]bool      // брони, по которым истечение уже выполняется
}

// New создает планировщик с интервалами по умолчанию
func New(reservationRepo ReservationRepository, expirer Expirer, logger Logger) *ExpirationScheduler {
	return &ExpirationScheduler{
		reservationRepo: reservationRepo,
		expirer:         expirer,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		tickInterval:    DefaultTickInterval,
		sweepInterval:   DefaultSweepInterval,
		entries:         make(map[int64]time.Time),
		inFlight:        make(map[int64]bool),
	}
}

// SetIntervals переопределяет интервалы тика и обхода.
// Вызывается до Run.
func (s *ExpirationScheduler) SetIntervals(tick, sweep time.Duration) {
	if tick > 0 {
		s.tickInterval = tick
	}
	if sweep > 0 {
		s.sweepInterval = sweep
	}
}

// Register регистрирует дедлайн оплаты брони.
// Повторная регистрация перезаписывает дедлайн.
func (s *ExpirationScheduler) Register(reservationID int64, deadline time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[reservationID] = deadline
	s.logger.Info("ExpirationScheduler: registered reservation id=%d, deadline %s",
		reservationID, deadline.Format(time.RFC3339))
}

// Deregister снимает дедлайн брони (оплата или отмена)
func (s *ExpirationScheduler) Deregister(reservationID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[reservationID]; ok {
		delete(s.entries, reservationID)
		s.logger.Info("ExpirationScheduler: deregistered reservation id=%d", reservationID)
	}
}

// Recover восстанавливает дедлайны из БД после рестарта сервиса.
// Просроченные брони будут закрыты первым же тиком.
func (s *ExpirationScheduler) Recover(ctx context.Context) error {
	reservations, err := s.reservationRepo.ListPaymentPending(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, reservation := range reservations {
		deadline, ok := reservation.PaymentDeadline()
		if !ok {
			s.logger.Warn("ExpirationScheduler: reservation id=%d is payment_pending without approved_at",
				reservation.ID)
			continue
		}
		s.entries[reservation.ID] = deadline
	}

	s.logger.Info("ExpirationScheduler: recovered %d pending deadlines", len(s.entries))
	return nil
}

// Run запускает цикл планировщика до отмены контекста
func (s *ExpirationScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	sweeper := time.NewTicker(s.sweepInterval)
	defer sweeper.Stop()

	s.logger.Info("ExpirationScheduler: started, tick=%s, sweep=%s", s.tickInterval, s.sweepInterval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("ExpirationScheduler: stopped")
			return
		case <-ticker.C:
			s.fireDue(ctx)
		case <-sweeper.C:
			s.sweep(ctx)
		}
	}
}

// fireDue закрывает все брони с истекшим дедлайном
func (s *ExpirationScheduler) fireDue(ctx context.Context) {
	now := s.timeProvider.Now()

	s.mu.Lock()
	due := make([]int64, 0)
	for id, deadline := range s.entries {
		if s.inFlight[id] {
			continue
		}
		if !now.Before(deadline) {
			due = append(due, id)
			s.inFlight[id] = true
		}
	}
	s.mu.Unlock()

	for _, id := range due {
		s.expire(ctx, id)
	}
}

// expire выполняет истечение одной брони и чистит состояние
func (s *ExpirationScheduler) expire(ctx context.Context, reservationID int64) {
	defer func() {
		s.mu.Lock()
		delete(s.entries, reservationID)
		delete(s.inFlight, reservationID)
		s.mu.Unlock()
	}()

	if err := s.expirer.Expire(ctx, reservationID); err != nil {
		// Проигрыш гонки с оплатой или отменой - штатная ситуация
		s.logger.Warn("ExpirationScheduler: expire reservation id=%d: %v", reservationID, err)
		return
	}

	s.logger.Info("ExpirationScheduler: reservation id=%d expired", reservationID)
}

// sweep находит в БД просроченные брони без зарегистрированного дедлайна
func (s *ExpirationScheduler) sweep(ctx context.Context) {
	reservations, err := s.reservationRepo.ListPaymentPending(ctx)
	if err != nil {
		s.logger.Error("ExpirationScheduler: sweep failed: %v", err)
		return
	}

	now := s.timeProvider.Now()
	recovered := 0

	s.mu.Lock()
	for _, reservation := range reservations {
		if _, ok := s.entries[reservation.ID]; ok {
			continue
		}
		if s.inFlight[reservation.ID] {
			continue
		}
		deadline, ok := reservation.PaymentDeadline()
		if !ok {
			continue
		}
		if now.Before(deadline) {
			// Дедлайн еще впереди - просто возвращаем в планирование
			s.entries[reservation.ID] = deadline
			continue
		}
		s.entries[reservation.ID] = deadline
		recovered++
	}
	s.mu.Unlock()

	if recovered > 0 {
		s.logger.Warn("ExpirationScheduler: sweep picked up %d overdue reservations", recovered)
	}
}
