package ordering

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced = "OrderPlaced"
)

// OrderPlacedEvent is published when an order is placed. Delivery is
// at-least-once; the commission handler must tolerate redelivery.
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(orderID uuid.UUID) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, orderID),
		OrderID:         orderID,
	}
}
