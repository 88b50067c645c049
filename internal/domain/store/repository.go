package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// StoreRepository provides access to stores
type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Store, int64, error)
	Save(ctx context.Context, s *Store) error
	Update(ctx context.Context, s *Store) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StoreAddressRepository provides access to store addresses
type StoreAddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StoreAddress, error)
	FindByStore(ctx context.Context, storeID uuid.UUID) (*StoreAddress, error)
	Save(ctx context.Context, addr *StoreAddress) error
	Update(ctx context.Context, addr *StoreAddress) error
	Delete(ctx context.Context, id uuid.UUID) error
}
