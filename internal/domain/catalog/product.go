package catalog

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "draft"
	ProductStatusPublished ProductStatus = "published"
)

const handleSuffixLen = 5

const base36 = "abcdefghijklmnopqrstuvwxyz0123456789"

// Product represents a sellable product listed by a vendor store.
// The owning store is attached through a product-store link.
type Product struct {
	shared.BaseAggregateRoot
	Title        string
	Handle       string // unique among non-deleted products, suffixed on create
	Description  string
	Thumbnail    string
	Status       ProductStatus
	CollectionID *uuid.UUID
	CategoryID   *uuid.UUID
	Images       []ProductImage
}

// ProductImage is an ordered image attached to a product
type ProductImage struct {
	shared.BaseEntity
	ProductID uuid.UUID
	URL       string
	Rank      int
}

// NewProduct creates a product. The handle is taken from the client-supplied
// value or derived from the title, and always gets a random suffix so that
// multiple vendors can list products with the same title without colliding
// on the unique handle index. Uniqueness is therefore probabilistic.
func NewProduct(title, handle string) (*Product, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_TITLE", "Title is required")
	}

	if handle == "" {
		handle = Slugify(title)
	}
	handle = handle + "-" + randomSuffix()

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Handle:            handle,
		Status:            ProductStatusPublished,
	}
	p.AddDomainEvent(NewProductCreatedEvent(p))
	return p, nil
}

// AddImage appends an image to the product
func (p *Product) AddImage(url string) {
	p.Images = append(p.Images, ProductImage{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  p.ID,
		URL:        url,
		Rank:       len(p.Images),
	})
	p.UpdatedAt = time.Now()
}

// AutoFillThumbnail sets the thumbnail from the first image when unset.
// Returns true when the thumbnail was changed.
func (p *Product) AutoFillThumbnail() bool {
	if p.Thumbnail != "" || len(p.Images) == 0 {
		return false
	}
	p.Thumbnail = p.Images[0].URL
	p.UpdatedAt = time.Now()
	return true
}

func randomSuffix() string {
	b := make([]byte, handleSuffixLen)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}
