package cache

import (
	"context"
	"sync"
	"time"

	"github.com/marketplace/backend/internal/domain/shared"
)

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)

const cleanupInterval = 5 * time.Minute

// InMemoryIdempotencyStore keeps processed event IDs in a map with per-key
// expiry. It covers single-instance deployments and tests; multi-instance
// setups should use the Redis-backed store instead.
type InMemoryIdempotencyStore struct {
	mu        sync.RWMutex
	deadlines map[string]time.Time

	stop      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore builds the store and starts its background
// sweeper. Call Close to stop it.
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	s := &InMemoryIdempotencyStore{
		deadlines: make(map[string]time.Time),
		stop:      make(chan struct{}),
	}

	s.wg.Add(1)
	go s.sweepLoop()

	return s
}

// MarkProcessed records the event ID for ttl. It reports true when the ID
// was not yet present, false when a live entry already exists.
func (s *InMemoryIdempotencyStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if deadline, ok := s.deadlines[eventID]; ok && now.Before(deadline) {
		return false, nil
	}

	s.deadlines[eventID] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether a live entry exists for the event ID.
// Expired entries count as not processed.
func (s *InMemoryIdempotencyStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	deadline, ok := s.deadlines[eventID]
	return ok && time.Now().Before(deadline), nil
}

// Close stops the sweeper. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		s.wg.Wait()
	})
	return nil
}

// Size reports the number of entries, expired ones included until the
// next sweep.
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.deadlines)
}

func (s *InMemoryIdempotencyStore) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *InMemoryIdempotencyStore) sweep() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for eventID, deadline := range s.deadlines {
		if now.After(deadline) {
			delete(s.deadlines, eventID)
		}
	}
}
