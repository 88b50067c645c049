package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact that happened inside an aggregate, identified by
// a unique event ID used for duplicate suppression.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
	AggregateType() string
}

// BaseDomainEvent carries the common event fields; embed it in concrete
// event types.
type BaseDomainEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	AggID     uuid.UUID `json:"aggregate_id"`
	AggType   string    `json:"aggregate_type"`
}

// NewBaseDomainEvent stamps a fresh event ID and the current time.
func NewBaseDomainEvent(eventType, aggType string, aggID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
		AggID:     aggID,
		AggType:   aggType,
	}
}

func (e *BaseDomainEvent) EventID() uuid.UUID {
	return e.ID
}

func (e *BaseDomainEvent) EventType() string {
	return e.Type
}

func (e *BaseDomainEvent) OccurredAt() time.Time {
	return e.Timestamp
}

func (e *BaseDomainEvent) AggregateID() uuid.UUID {
	return e.AggID
}

func (e *BaseDomainEvent) AggregateType() string {
	return e.AggType
}
