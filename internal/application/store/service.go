// Package store contains the application services for vendor stores:
// address upsert, logo management and public store listings.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/store"
)

const (
	defaultStoreLimit = 12
	maxStoreLimit     = 100
)

// Service handles store-level operations for the current vendor
type Service struct {
	stores    store.StoreRepository
	addresses store.StoreAddressRepository
	logger    *zap.Logger
}

// NewService creates a new store service
func NewService(
	stores store.StoreRepository,
	addresses store.StoreAddressRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		stores:    stores,
		addresses: addresses,
		logger:    logger,
	}
}

// Get returns a store by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	return s.stores.FindByID(ctx, id)
}

// NormalizeStoreFilter applies the listing page bounds: the limit
// defaults to 12 and caps at 100, the offset floors at zero. Handlers
// run it too so the envelope echoes the limit that was actually applied.
func NormalizeStoreFilter(filter shared.Filter) shared.Filter {
	if filter.Limit <= 0 {
		filter.Limit = defaultStoreLimit
	}
	if filter.Limit > maxStoreLimit {
		filter.Limit = maxStoreLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}

// List returns stores matching the filter, newest first.
// The limit is clamped to 100 and defaults to 12.
func (s *Service) List(ctx context.Context, filter shared.Filter) ([]store.Store, int64, error) {
	return s.stores.FindAll(ctx, NormalizeStoreFilter(filter))
}

// GetAddress returns the store's address, nil when none is set
func (s *Service) GetAddress(ctx context.Context, storeID uuid.UUID) (*store.StoreAddress, error) {
	addr, err := s.addresses.FindByStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return addr, nil
}

// UpsertAddress creates or replaces the store's single address.
// The returned bool is true when a new address row was created.
func (s *Service) UpsertAddress(ctx context.Context, storeID uuid.UUID, input store.AddressInput) (*store.StoreAddress, bool, error) {
	existing, err := s.addresses.FindByStore(ctx, storeID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}

	if existing != nil {
		if err := existing.Apply(input); err != nil {
			return nil, false, err
		}
		if err := s.addresses.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	addr, err := store.NewStoreAddress(storeID, input)
	if err != nil {
		return nil, false, err
	}
	if err := s.addresses.Save(ctx, addr); err != nil {
		return nil, false, err
	}

	s.logger.Info("Store address created", zap.String("store_id", storeID.String()))
	return addr, true, nil
}

// GetLogo returns the store's logo URL, empty when unset
func (s *Service) GetLogo(ctx context.Context, storeID uuid.UUID) (string, error) {
	vendorStore, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return "", err
	}
	return vendorStore.LogoURL(), nil
}

// SetLogo stores the logo URL in the store's metadata
func (s *Service) SetLogo(ctx context.Context, storeID uuid.UUID, url string) (*store.Store, error) {
	vendorStore, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	vendorStore.SetLogoURL(url)
	if err := s.stores.Update(ctx, vendorStore); err != nil {
		return nil, err
	}

	s.logger.Info("Store logo updated", zap.String("store_id", storeID.String()))
	return vendorStore, nil
}
