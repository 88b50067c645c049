package ordering

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository provides access to orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	Save(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
}

// PaymentSessionRepository provides access to payment sessions
type PaymentSessionRepository interface {
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]PaymentSession, error)
	Save(ctx context.Context, session *PaymentSession) error
}

// CustomerStoreLinkRepository maintains the customer-store association table
type CustomerStoreLinkRepository interface {
	// Create links a customer to a store. Returns shared.ErrDuplicateLink
	// when the pair is already linked.
	Create(ctx context.Context, link *CustomerStoreLink) error
	Exists(ctx context.Context, customerID, storeID uuid.UUID) (bool, error)
}
