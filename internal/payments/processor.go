package payments

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownMethod возвращается, когда метод оплаты не зарегистрирован
	ErrUnknownMethod = errors.New("payments: unknown payment method")

	// ErrProcessor возвращается при ошибке платёжного шлюза
	ErrProcessor = errors.New("payments: processor failure")
)

// Receipt результат успешной обработки платежа
type Receipt struct {
	Method      string
	Amount      float64
	ProcessedAt time.Time
}

// Processor интерфейс платёжной стратегии.
// Стратегии не хранят состояние и безопасны для повторного вызова:
// движок может повторить Process при временном сбое.
type Processor interface {
	Name() string
	Process(ctx context.Context, amount float64) (*Receipt, error)
}

// simulatedProcessor имитирует внешний платёжный шлюз с задержкой ответа
type simulatedProcessor struct {
	name  string
	delay time.Duration
}

func (p *simulatedProcessor) Name() string {
	return p.name
}

// Process имитирует обращение к шлюзу: ждёт delay и подтверждает платёж
func (p *simulatedProcessor) Process(ctx context.Context, amount float64) (*Receipt, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %v", ErrProcessor, p.name, ctx.Err())
	case <-time.After(p.delay):
	}

	return &Receipt{
		Method:      p.name,
		Amount:      amount,
		ProcessedAt: time.Now(),
	}, nil
}

// Registry реестр платёжных стратегий, выбираемых по имени метода
type Registry struct {
	processors map[string]Processor
}

// NewRegistry создает реестр со стандартными симулированными шлюзами
func NewRegistry() *Registry {
	r := &Registry{processors: make(map[string]Processor)}
	r.Register(&simulatedProcessor{name: "DANA", delay: 2 * time.Second})
	r.Register(&simulatedProcessor{name: "GOPAY", delay: 2 * time.Second})
	r.Register(&simulatedProcessor{name: "OVO", delay: 2 * time.Second})
	return r
}

// Register добавляет стратегию в реестр
func (r *Registry) Register(p Processor) {
	r.processors[p.Name()] = p
}

// Get возвращает стратегию по имени метода
func (r *Registry) Get(method string) (Processor, error) {
	p, ok := r.processors[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	return p, nil
}

// Methods возвращает список зарегистрированных методов оплаты
func (r *Registry) Methods() []string {
	methods := make([]string, 0, len(r.processors))
	for name := range r.processors {
		methods = append(methods, name)
	}
	return methods
}
