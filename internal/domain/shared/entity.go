package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every aggregate and entity in the domain.
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity carries the identity and timestamps shared by all entities.
// Embed it and it satisfies Entity.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity assigns a fresh UUID and stamps both timestamps with the
// current time.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}
