// Package catalog contains the application services for brands, products
// and their link tables.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

const (
	defaultBrandLimit = 100
	maxBrandLimit     = 200
)

// CreateBrandInput carries the fields for creating a brand
type CreateBrandInput struct {
	Name        string
	Handle      string
	LogoURL     string
	Description string
}

// BrandService handles brand CRUD
type BrandService struct {
	brands catalog.BrandRepository
	logger *zap.Logger
}

// NewBrandService creates a new brand service
func NewBrandService(brands catalog.BrandRepository, logger *zap.Logger) *BrandService {
	return &BrandService{
		brands: brands,
		logger: logger,
	}
}

// Create creates a brand. The handle is slugified from the name when omitted.
func (s *BrandService) Create(ctx context.Context, input CreateBrandInput) (*catalog.Brand, error) {
	brand, err := catalog.NewBrand(input.Name, input.Handle, input.LogoURL, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.brands.Save(ctx, brand); err != nil {
		return nil, err
	}

	s.logger.Info("Brand created",
		zap.String("brand_id", brand.ID.String()),
		zap.String("handle", brand.Handle))
	return brand, nil
}

// Get returns a brand by id
func (s *BrandService) Get(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	return s.brands.FindByID(ctx, id)
}

// NormalizeBrandFilter applies the listing page bounds: the limit
// defaults to 100 and caps at 200, the offset floors at zero. Handlers
// run it too so the envelope echoes the limit that was actually applied.
func NormalizeBrandFilter(filter shared.Filter) shared.Filter {
	if filter.Limit <= 0 {
		filter.Limit = defaultBrandLimit
	}
	if filter.Limit > maxBrandLimit {
		filter.Limit = maxBrandLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}

// List returns brands matching the filter, name ascending.
// The limit is clamped to 200 and defaults to 100.
func (s *BrandService) List(ctx context.Context, filter shared.Filter) ([]catalog.Brand, int64, error) {
	return s.brands.FindAll(ctx, NormalizeBrandFilter(filter))
}

// Update applies a partial update to a brand
func (s *BrandService) Update(ctx context.Context, id uuid.UUID, input catalog.UpdateBrandInput) (*catalog.Brand, error) {
	brand, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := brand.Apply(input); err != nil {
		return nil, err
	}

	if err := s.brands.Update(ctx, brand); err != nil {
		return nil, err
	}

	return brand, nil
}

// Delete soft-deletes a brand
func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.brands.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Brand deleted", zap.String("brand_id", id.String()))
	return nil
}
