package event

import (
	"context"
	"sync/atomic"

	"github.com/marketplace/backend/internal/domain/shared"
	"go.uber.org/zap"
)

var _ shared.EventHandler = (*IdempotentHandler)(nil)

// IdempotencyMetrics counts first-time, duplicate and failed deliveries.
type IdempotencyMetrics struct {
	EventsProcessed atomic.Int64
	EventsDuplicate atomic.Int64
	EventsFailed    atomic.Int64
}

// IdempotencyStats is a point-in-time snapshot of IdempotencyMetrics.
type IdempotencyStats struct {
	EventsProcessed int64 `json:"events_processed"`
	EventsDuplicate int64 `json:"events_duplicate"`
	EventsFailed    int64 `json:"events_failed"`
}

func (m *IdempotencyMetrics) Stats() IdempotencyStats {
	return IdempotencyStats{
		EventsProcessed: m.EventsProcessed.Load(),
		EventsDuplicate: m.EventsDuplicate.Load(),
		EventsFailed:    m.EventsFailed.Load(),
	}
}

// GlobalIdempotencyMetrics aggregates counts across every handler that is
// wrapped with it via WithIdempotencyMetrics. Handlers that need separate
// counters should inject their own IdempotencyMetrics instead.
var GlobalIdempotencyMetrics = &IdempotencyMetrics{}

// IdempotentHandler wraps an EventHandler so each event ID is processed
// at most once per TTL window, even when the bus redelivers it.
type IdempotentHandler struct {
	inner   shared.EventHandler
	store   shared.IdempotencyStore
	cfg     shared.IdempotencyConfig
	log     *zap.Logger
	metrics *IdempotencyMetrics
}

// IdempotentHandlerOption configures an IdempotentHandler.
type IdempotentHandlerOption func(*IdempotentHandler)

func WithIdempotencyConfig(cfg shared.IdempotencyConfig) IdempotentHandlerOption {
	return func(h *IdempotentHandler) { h.cfg = cfg }
}

func WithIdempotencyMetrics(metrics *IdempotencyMetrics) IdempotentHandlerOption {
	return func(h *IdempotentHandler) { h.metrics = metrics }
}

func NewIdempotentHandler(
	inner shared.EventHandler,
	store shared.IdempotencyStore,
	log *zap.Logger,
	opts ...IdempotentHandlerOption,
) *IdempotentHandler {
	h := &IdempotentHandler{
		inner:   inner,
		store:   store,
		cfg:     shared.DefaultIdempotencyConfig(),
		log:     log,
		metrics: &IdempotencyMetrics{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *IdempotentHandler) EventTypes() []string {
	return h.inner.EventTypes()
}

// Handle marks the event ID processed before delegating. A store failure
// degrades to at-least-once delivery rather than dropping the event. The
// mark is kept on handler failure so retries wait out the TTL.
func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !h.cfg.Enabled {
		return h.inner.Handle(ctx, event)
	}

	eventID := event.EventID().String()
	fields := []zap.Field{
		zap.String("event_id", eventID),
		zap.String("event_type", event.EventType()),
	}

	isNew, err := h.store.MarkProcessed(ctx, eventID, h.cfg.TTL)
	switch {
	case err != nil:
		h.log.Warn("failed to check idempotency, processing anyway", append(fields, zap.Error(err))...)
	case !isNew:
		h.metrics.EventsDuplicate.Add(1)
		h.log.Debug("duplicate event detected, skipping", fields...)
		return nil
	}

	if err := h.inner.Handle(ctx, event); err != nil {
		h.metrics.EventsFailed.Add(1)
		h.log.Error("event handler failed", append(fields, zap.Error(err))...)
		return err
	}

	h.metrics.EventsProcessed.Add(1)
	h.log.Debug("event processed successfully", fields...)
	return nil
}

func (h *IdempotentHandler) GetMetrics() *IdempotencyMetrics {
	return h.metrics
}

// GetWrappedHandler exposes the inner handler.
func (h *IdempotentHandler) GetWrappedHandler() shared.EventHandler {
	return h.inner
}

// WrapHandlersWithIdempotency wraps every handler in the slice with the
// same store and options.
func WrapHandlersWithIdempotency(
	handlers []shared.EventHandler,
	store shared.IdempotencyStore,
	log *zap.Logger,
	opts ...IdempotentHandlerOption,
) []shared.EventHandler {
	wrapped := make([]shared.EventHandler, len(handlers))
	for i, h := range handlers {
		wrapped[i] = NewIdempotentHandler(h, store, log, opts...)
	}
	return wrapped
}
