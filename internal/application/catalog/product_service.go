package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/store"
	"github.com/marketplace/backend/internal/infrastructure/config"
)

const (
	defaultProductLimit = 12
	maxProductLimit     = 100
)

// CreateProductInput carries the fields for creating a product
type CreateProductInput struct {
	Title        string
	Handle       string
	Description  string
	Thumbnail    string
	Images       []string
	CollectionID *uuid.UUID
	CategoryID   *uuid.UUID
}

// ProductListing is a product joined with its owning store for public lists
type ProductListing struct {
	Product catalog.Product
	Store   *store.Store
}

// ProductService handles product creation, listing and the product link tables
type ProductService struct {
	products   catalog.ProductRepository
	storeLinks catalog.ProductStoreLinkRepository
	brandLinks catalog.ProductBrandLinkRepository
	brands     catalog.BrandRepository
	stores     store.StoreRepository
	pricing    config.PricingConfig
	logger     *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(
	products catalog.ProductRepository,
	storeLinks catalog.ProductStoreLinkRepository,
	brandLinks catalog.ProductBrandLinkRepository,
	brands catalog.BrandRepository,
	stores store.StoreRepository,
	pricing config.PricingConfig,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		products:   products,
		storeLinks: storeLinks,
		brandLinks: brandLinks,
		brands:     brands,
		stores:     stores,
		pricing:    pricing,
		logger:     logger,
	}
}

// Create creates a product for the given store and links it to the store.
// When the link cannot be created the product is deleted again so no
// orphaned, store-less product remains.
func (s *ProductService) Create(ctx context.Context, storeID uuid.UUID, input CreateProductInput) (*catalog.Product, error) {
	product, err := catalog.NewProduct(input.Title, input.Handle)
	if err != nil {
		return nil, err
	}

	product.Description = input.Description
	product.Thumbnail = input.Thumbnail
	product.CollectionID = input.CollectionID
	product.CategoryID = input.CategoryID
	for _, url := range input.Images {
		product.AddImage(url)
	}
	product.AutoFillThumbnail()

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	link := catalog.NewProductStoreLink(product.ID, storeID)
	if err := s.storeLinks.Create(ctx, link); err != nil {
		if delErr := s.products.Delete(ctx, product.ID); delErr != nil {
			s.logger.Error("Failed to roll back product after link failure",
				zap.String("product_id", product.ID.String()),
				zap.Error(delErr))
		}
		return nil, err
	}

	if s.pricing.ChannelPricingEnabled {
		// Prices are scoped to the store's sales channel; the price rows
		// themselves live in the pricing system, not in this service.
		s.logger.Info("Product created with channel-scoped pricing",
			zap.String("product_id", product.ID.String()),
			zap.String("store_id", storeID.String()))
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("store_id", storeID.String()),
		zap.String("handle", product.Handle))
	return product, nil
}

// Get returns a product by id
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return s.products.FindByID(ctx, id)
}

// NormalizeProductFilter applies the listing page bounds: the limit
// defaults to 12 and caps at 100, the offset floors at zero. Handlers
// run it too so the envelope echoes the limit that was actually applied.
func NormalizeProductFilter(filter catalog.ProductFilter) catalog.ProductFilter {
	if filter.Limit <= 0 {
		filter.Limit = defaultProductLimit
	}
	if filter.Limit > maxProductLimit {
		filter.Limit = maxProductLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}

// List returns products with their owning stores joined in.
// The limit is clamped to 100 and defaults to 12.
func (s *ProductService) List(ctx context.Context, filter catalog.ProductFilter) ([]ProductListing, int64, error) {
	filter = NormalizeProductFilter(filter)

	products, count, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	listings := make([]ProductListing, len(products))
	for i, p := range products {
		listings[i] = ProductListing{Product: p}
	}
	if err := s.attachStores(ctx, listings); err != nil {
		return nil, 0, err
	}

	return listings, count, nil
}

// attachStores joins each product's owning store through the link table.
// Products without a link (or with a deleted store) are listed store-less.
func (s *ProductService) attachStores(ctx context.Context, listings []ProductListing) error {
	if len(listings) == 0 {
		return nil
	}

	productIDs := make([]uuid.UUID, len(listings))
	for i, l := range listings {
		productIDs[i] = l.Product.ID
	}

	links, err := s.storeLinks.FindByProducts(ctx, productIDs)
	if err != nil {
		return err
	}

	storeByProduct := make(map[uuid.UUID]uuid.UUID, len(links))
	for _, link := range links {
		storeByProduct[link.ProductID] = link.StoreID
	}

	storeCache := make(map[uuid.UUID]*store.Store)
	for i := range listings {
		storeID, ok := storeByProduct[listings[i].Product.ID]
		if !ok {
			continue
		}
		if cached, ok := storeCache[storeID]; ok {
			listings[i].Store = cached
			continue
		}
		vendorStore, err := s.stores.FindByID(ctx, storeID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return err
		}
		storeCache[storeID] = vendorStore
		listings[i].Store = vendorStore
	}

	return nil
}

// GetOwningStore returns the store a product is linked to
func (s *ProductService) GetOwningStore(ctx context.Context, productID uuid.UUID) (*store.Store, error) {
	link, err := s.storeLinks.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.stores.FindByID(ctx, link.StoreID)
}

// SetProductBrand tags a product with a brand. Any existing brand links on
// the product are removed first so exactly one active link remains.
func (s *ProductService) SetProductBrand(ctx context.Context, productID, brandID uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return err
	}
	if _, err := s.brands.FindByID(ctx, brandID); err != nil {
		return err
	}

	if err := s.brandLinks.RemoveByProduct(ctx, productID); err != nil {
		return err
	}

	link := catalog.NewProductBrandLink(productID, brandID)
	if err := s.brandLinks.Create(ctx, link); err != nil {
		return err
	}

	s.logger.Info("Product brand set",
		zap.String("product_id", productID.String()),
		zap.String("brand_id", brandID.String()))
	return nil
}

// GetProductBrand returns the brand linked to a product, nil when untagged
func (s *ProductService) GetProductBrand(ctx context.Context, productID uuid.UUID) (*catalog.Brand, error) {
	links, err := s.brandLinks.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}
	return s.brands.FindByID(ctx, links[0].BrandID)
}

// RemoveProductBrand removes the product-brand link
func (s *ProductService) RemoveProductBrand(ctx context.Context, productID, brandID uuid.UUID) error {
	return s.brandLinks.Remove(ctx, productID, brandID)
}

// BackfillThumbnails fills missing thumbnails from each product's first
// image. Returns the number of products updated.
func (s *ProductService) BackfillThumbnails(ctx context.Context) (int, error) {
	products, err := s.products.FindMissingThumbnail(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range products {
		product := &products[i]
		if !product.AutoFillThumbnail() {
			continue
		}
		if err := s.products.Update(ctx, product); err != nil {
			s.logger.Error("Failed to backfill thumbnail",
				zap.String("product_id", product.ID.String()),
				zap.Error(err))
			continue
		}
		updated++
	}

	s.logger.Info("Thumbnail backfill finished",
		zap.Int("candidates", len(products)),
		zap.Int("updated", updated))
	return updated, nil
}
