package payments_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/payments"
)

func TestRegistry_KnownMethods(t *testing.T) {
	registry := payments.NewRegistry()

	for _, method := range []string{"DANA", "GOPAY", "OVO"} {
		p, err := registry.Get(method)
		require.NoError(t, err, method)
		assert.Equal(t, method, p.Name())
	}
}

func TestRegistry_UnknownMethod(t *testing.T) {
	registry := payments.NewRegistry()

	_, err := registry.Get("BITCOIN")

	assert.ErrorIs(t, err, payments.ErrUnknownMethod)
}

func TestProcessor_CancelledContext(t *testing.T) {
	registry := payments.NewRegistry()
	p, err := registry.Get("DANA")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Process(ctx, 50000)

	assert.True(t, errors.Is(err, payments.ErrProcessor))
}

func TestProcessor_Success(t *testing.T) {
	registry := payments.NewRegistry()
	registry.Register(fastProcessor{})

	p, err := registry.Get("FAST")
	require.NoError(t, err)

	receipt, err := p.Process(context.Background(), 75000)

	require.NoError(t, err)
	assert.Equal(t, "FAST", receipt.Method)
	assert.Equal(t, 75000.0, receipt.Amount)
	assert.WithinDuration(t, time.Now(), receipt.ProcessedAt, time.Second)
}

type fastProcessor struct{}

func (fastProcessor) Name() string { return "FAST" }

func (fastProcessor) Process(_ context.Context, amount float64) (*payments.Receipt, error) {
	return &payments.Receipt{Method: "FAST", Amount: amount, ProcessedAt: time.Now()}, nil
}
