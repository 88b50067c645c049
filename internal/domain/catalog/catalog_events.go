package catalog

import (
	"github.com/marketplace/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeProduct = "Product"
	AggregateTypeBrand   = "Brand"
)

// Event type constants
const (
	EventTypeProductCreated = "ProductCreated"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, p.ID),
		Title:           p.Title,
		Handle:          p.Handle,
	}
}
