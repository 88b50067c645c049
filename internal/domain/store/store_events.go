package store

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeStore = "Store"

// Event type constants
const (
	EventTypeStoreCreated = "StoreCreated"
)

// StoreCreatedEvent is published when a new store is created
type StoreCreatedEvent struct {
	shared.BaseDomainEvent
	Name        string    `json:"name"`
	OwnerUserID uuid.UUID `json:"owner_user_id"`
}

// NewStoreCreatedEvent creates a new StoreCreatedEvent
func NewStoreCreatedEvent(s *Store) *StoreCreatedEvent {
	return &StoreCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStoreCreated, AggregateTypeStore, s.ID),
		Name:            s.Name,
		OwnerUserID:     s.OwnerUserID,
	}
}
