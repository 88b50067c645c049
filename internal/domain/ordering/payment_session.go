package ordering

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ProviderStripe is the payment provider identifier for Stripe sessions
const ProviderStripe = "stripe"

// PaymentSession records the provider-side payment object created for an
// order. For Stripe, Data carries the raw provider payload and Data["id"]
// is the PaymentIntent id used for reconciliation.
type PaymentSession struct {
	shared.BaseEntity
	OrderID  uuid.UUID
	Provider string
	Data     map[string]interface{}
}

// PaymentIntentID extracts the provider payment object id, empty when absent
func (s *PaymentSession) PaymentIntentID() string {
	if s.Data == nil {
		return ""
	}
	id, _ := s.Data["id"].(string)
	return id
}

// CustomerStoreLink joins a customer to a store they have ordered from
type CustomerStoreLink struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	StoreID    uuid.UUID
}

// NewCustomerStoreLink creates a customer-store link
func NewCustomerStoreLink(customerID, storeID uuid.UUID) *CustomerStoreLink {
	return &CustomerStoreLink{
		ID:         uuid.New(),
		CustomerID: customerID,
		StoreID:    storeID,
	}
}
