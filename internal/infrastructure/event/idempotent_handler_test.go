package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockEventHandler struct {
	mock.Mock
}

func (m *MockEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventHandler) EventTypes() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, eventID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	return m.Called().Error(0)
}

type orderPlacedFixture struct {
	shared.BaseDomainEvent
	Total int64
}

func newOrderPlacedFixture() *orderPlacedFixture {
	return &orderPlacedFixture{
		BaseDomainEvent: shared.NewBaseDomainEvent("OrderPlaced", "Order", uuid.New()),
		Total:           10000,
	}
}

func newIdempotencyFixture(t *testing.T) (*MockEventHandler, *IdempotentHandler, *orderPlacedFixture) {
	t.Helper()

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	inner := new(MockEventHandler)
	return inner, NewIdempotentHandler(inner, store, zap.NewNop()), newOrderPlacedFixture()
}

func TestIdempotentHandler_FirstDelivery(t *testing.T) {
	inner, handler, event := newIdempotencyFixture(t)
	inner.On("Handle", mock.Anything, event).Return(nil)

	require.NoError(t, handler.Handle(context.Background(), event))

	inner.AssertExpectations(t)
	assert.Equal(t, int64(1), handler.metrics.EventsProcessed.Load())
	assert.Zero(t, handler.metrics.EventsDuplicate.Load())
}

func TestIdempotentHandler_Redelivery(t *testing.T) {
	inner, handler, event := newIdempotencyFixture(t)
	inner.On("Handle", mock.Anything, event).Return(nil).Once()

	for i := 0; i < 3; i++ {
		require.NoError(t, handler.Handle(context.Background(), event))
	}

	inner.AssertExpectations(t)
	assert.Equal(t, int64(1), handler.metrics.EventsProcessed.Load())
	assert.Equal(t, int64(2), handler.metrics.EventsDuplicate.Load())
}

func TestIdempotentHandler_InnerFailure(t *testing.T) {
	inner, handler, event := newIdempotencyFixture(t)
	innerErr := errors.New("commission write failed")
	inner.On("Handle", mock.Anything, event).Return(innerErr)

	err := handler.Handle(context.Background(), event)

	require.ErrorIs(t, err, innerErr)
	assert.Zero(t, handler.metrics.EventsProcessed.Load())
	assert.Equal(t, int64(1), handler.metrics.EventsFailed.Load())
}

func TestIdempotentHandler_StoreFailureStillDelivers(t *testing.T) {
	store := new(MockIdempotencyStore)
	inner := new(MockEventHandler)
	event := newOrderPlacedFixture()

	store.On("MarkProcessed", mock.Anything, event.EventID().String(), mock.Anything).
		Return(false, errors.New("redis unavailable"))
	inner.On("Handle", mock.Anything, event).Return(nil)

	handler := NewIdempotentHandler(inner, store, zap.NewNop())

	require.NoError(t, handler.Handle(context.Background(), event))

	store.AssertExpectations(t)
	inner.AssertExpectations(t)
}

func TestIdempotentHandler_Disabled(t *testing.T) {
	inner, _, event := newIdempotencyFixture(t)
	inner.On("Handle", mock.Anything, event).Return(nil).Times(3)

	cfg := shared.DefaultIdempotencyConfig()
	cfg.Enabled = false

	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()
	handler := NewIdempotentHandler(inner, store, zap.NewNop(), WithIdempotencyConfig(cfg))

	for i := 0; i < 3; i++ {
		require.NoError(t, handler.Handle(context.Background(), event))
	}

	inner.AssertExpectations(t)
	assert.Zero(t, handler.metrics.EventsProcessed.Load())
	assert.Zero(t, handler.metrics.EventsDuplicate.Load())
}

func TestIdempotentHandler_DelegatesEventTypes(t *testing.T) {
	inner, handler, _ := newIdempotencyFixture(t)
	inner.On("EventTypes").Return([]string{"OrderPlaced", "StoreCreated"})

	assert.Equal(t, []string{"OrderPlaced", "StoreCreated"}, handler.EventTypes())
	inner.AssertExpectations(t)
}

func TestIdempotentHandler_CustomTTL(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	inner := new(MockEventHandler)
	event := newOrderPlacedFixture()
	inner.On("Handle", mock.Anything, event).Return(nil).Once()

	handler := NewIdempotentHandler(inner, store, zap.NewNop(),
		WithIdempotencyConfig(shared.IdempotencyConfig{TTL: time.Hour, Enabled: true}),
	)

	require.NoError(t, handler.Handle(context.Background(), event))
	inner.AssertExpectations(t)
}

func TestIdempotentHandler_GetWrappedHandler(t *testing.T) {
	inner, handler, _ := newIdempotencyFixture(t)
	assert.Equal(t, inner, handler.GetWrappedHandler())
}

func TestIdempotentHandler_SharedMetrics(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	metrics := &IdempotencyMetrics{}
	eventA := newOrderPlacedFixture()
	eventB := newOrderPlacedFixture()

	innerA := new(MockEventHandler)
	innerB := new(MockEventHandler)
	innerA.On("Handle", mock.Anything, eventA).Return(nil)
	innerB.On("Handle", mock.Anything, eventB).Return(nil)

	handlerA := NewIdempotentHandler(innerA, store, zap.NewNop(), WithIdempotencyMetrics(metrics))
	handlerB := NewIdempotentHandler(innerB, store, zap.NewNop(), WithIdempotencyMetrics(metrics))

	require.NoError(t, handlerA.Handle(context.Background(), eventA))
	require.NoError(t, handlerB.Handle(context.Background(), eventB))

	assert.Equal(t, int64(2), metrics.EventsProcessed.Load())
}

func TestWrapHandlersWithIdempotency(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	wrapped := WrapHandlersWithIdempotency(
		[]shared.EventHandler{new(MockEventHandler), new(MockEventHandler)},
		store, zap.NewNop(),
	)

	require.Len(t, wrapped, 2)
	for _, h := range wrapped {
		assert.IsType(t, &IdempotentHandler{}, h)
	}
}

func TestIdempotencyMetrics_Stats(t *testing.T) {
	metrics := &IdempotencyMetrics{}
	metrics.EventsProcessed.Add(10)
	metrics.EventsDuplicate.Add(5)
	metrics.EventsFailed.Add(2)

	stats := metrics.Stats()
	assert.Equal(t, int64(10), stats.EventsProcessed)
	assert.Equal(t, int64(5), stats.EventsDuplicate)
	assert.Equal(t, int64(2), stats.EventsFailed)
}

func TestIdempotentHandler_ConcurrentRedelivery(t *testing.T) {
	inner, handler, event := newIdempotencyFixture(t)
	inner.On("Handle", mock.Anything, event).Return(nil).Once()

	const workers = 50
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			errs <- handler.Handle(context.Background(), event)
		}()
	}
	for i := 0; i < workers; i++ {
		assert.NoError(t, <-errs)
	}

	inner.AssertExpectations(t)
	assert.Equal(t, int64(1), handler.metrics.EventsProcessed.Load())
	assert.Equal(t, int64(workers-1), handler.metrics.EventsDuplicate.Load())
}
