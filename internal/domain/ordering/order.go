package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Order metadata keys for commission bookkeeping
const (
	MetadataKeyCommissionRate   = "platform_commission_rate"
	MetadataKeyCommissionAmount = "platform_commission_amount"
	MetadataKeyPayoutEstimate   = "vendor_payout_estimate"
	MetadataKeyPayoutStatus     = "payout_status"
)

// PayoutStatusPending is the initial payout status written at order-placed time
const PayoutStatusPending = "pending"

// Order represents a placed order. Totals are denormalized at placement;
// commission fields are written once into metadata by the order-placed
// handler and never recomputed afterwards.
type Order struct {
	shared.BaseAggregateRoot
	DisplayID    int
	CustomerID   uuid.UUID
	StoreID      *uuid.UUID // owning store, set by the order-placed handler
	CurrencyCode string
	Total        decimal.Decimal
	Metadata     map[string]interface{}
	PlacedAt     time.Time
	Items        []OrderItem
}

// OrderItem is a product line of an order
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Commission holds the derived commission figures for an order
type Commission struct {
	Rate   decimal.Decimal
	Amount decimal.Decimal
	Payout decimal.Decimal
}

// ComputeCommission derives the platform commission and vendor payout
// estimate from the order total at the given rate. Amounts are rounded
// half-up to whole units, matching totals kept in minor currency units.
func ComputeCommission(total, rate decimal.Decimal) Commission {
	return Commission{
		Rate:   rate,
		Amount: total.Mul(rate).Round(0),
		Payout: total.Mul(decimal.NewFromInt(1).Sub(rate)).Round(0),
	}
}

// ApplyCommission writes the commission figures into order metadata.
// Existing values are overwritten; idempotency is the caller's concern.
func (o *Order) ApplyCommission(c Commission) {
	if o.Metadata == nil {
		o.Metadata = map[string]interface{}{}
	}
	rate, _ := c.Rate.Float64()
	o.Metadata[MetadataKeyCommissionRate] = rate
	o.Metadata[MetadataKeyCommissionAmount] = c.Amount.IntPart()
	o.Metadata[MetadataKeyPayoutEstimate] = c.Payout.IntPart()
	o.Metadata[MetadataKeyPayoutStatus] = PayoutStatusPending
	o.UpdatedAt = time.Now()
}

// AssignStore links the order to its owning store
func (o *Order) AssignStore(storeID uuid.UUID) {
	o.StoreID = &storeID
	o.UpdatedAt = time.Now()
}

// ProductIDs returns the distinct product ids of the order's lines
func (o *Order) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(o.Items))
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
