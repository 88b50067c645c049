// Package commission records platform commission figures on freshly placed
// orders and links the order's customer to the vendor store that sold it.
package commission

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/store"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/payment"
)

// DefaultRate applies when the configured commission rate is out of range
const DefaultRate = 0.10

// OrderPlacedHandler consumes OrderPlaced events. Delivery is
// at-least-once; wrap it in an idempotent handler so a redelivered event
// does not rewrite commission metadata.
type OrderPlacedHandler struct {
	orders           ordering.OrderRepository
	paymentSessions  ordering.PaymentSessionRepository
	customerLinks    ordering.CustomerStoreLinkRepository
	productStoreLink catalog.ProductStoreLinkRepository
	stores           store.StoreRepository
	annotator        payment.PaymentAnnotator
	rate             decimal.Decimal
	logger           *zap.Logger
}

// NewOrderPlacedHandler creates the commission handler
func NewOrderPlacedHandler(
	orders ordering.OrderRepository,
	paymentSessions ordering.PaymentSessionRepository,
	customerLinks ordering.CustomerStoreLinkRepository,
	productStoreLink catalog.ProductStoreLinkRepository,
	stores store.StoreRepository,
	annotator payment.PaymentAnnotator,
	cfg config.CommissionConfig,
	logger *zap.Logger,
) *OrderPlacedHandler {
	// Zero is a valid configured rate (commission-free platform); only
	// out-of-range values fall back to the default.
	rate := cfg.Rate
	if rate < 0 || rate >= 1 {
		rate = DefaultRate
	}

	return &OrderPlacedHandler{
		orders:           orders,
		paymentSessions:  paymentSessions,
		customerLinks:    customerLinks,
		productStoreLink: productStoreLink,
		stores:           stores,
		annotator:        annotator,
		rate:             decimal.NewFromFloat(rate),
		logger:           logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *OrderPlacedHandler) EventTypes() []string {
	return []string{ordering.EventTypeOrderPlaced}
}

// Handle resolves the order's owning store, links customer to store, writes
// the commission figures into order metadata and annotates the Stripe
// PaymentIntent. Only the core steps (load, link, commission write) fail the
// handler; the Stripe annotation recovers locally.
func (h *OrderPlacedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*ordering.OrderPlacedEvent)
	if !ok {
		h.logger.Warn("Ignoring unexpected event type", zap.String("type", event.EventType()))
		return nil
	}

	order, err := h.orders.FindByID(ctx, placed.OrderID)
	if err != nil {
		return err
	}

	vendorStore, err := h.resolveStore(ctx, order)
	if err != nil {
		return err
	}
	if vendorStore == nil {
		h.logger.Warn("Order has no store-linked products, skipping commission",
			zap.String("order_id", order.ID.String()))
		return nil
	}

	order.AssignStore(vendorStore.ID)

	if err := h.linkCustomer(ctx, order.CustomerID, vendorStore.ID); err != nil {
		return err
	}

	commission := ordering.ComputeCommission(order.Total, h.rate)
	order.ApplyCommission(commission)

	if err := h.orders.Update(ctx, order); err != nil {
		return err
	}

	h.logger.Info("Commission recorded",
		zap.String("order_id", order.ID.String()),
		zap.String("store_id", vendorStore.ID.String()),
		zap.String("commission_amount", commission.Amount.String()),
		zap.String("payout_estimate", commission.Payout.String()))

	h.annotatePaymentIntent(ctx, order, vendorStore)

	return nil
}

// resolveStore finds the store owning the order's products through the
// product-store link table. With lines from several stores the first linked
// row wins; mixed-store orders are not split.
func (h *OrderPlacedHandler) resolveStore(ctx context.Context, order *ordering.Order) (*store.Store, error) {
	productIDs := order.ProductIDs()
	if len(productIDs) == 0 {
		return nil, nil
	}

	links, err := h.productStoreLink.FindByProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}

	return h.stores.FindByID(ctx, links[0].StoreID)
}

// linkCustomer records the customer-store relation. A duplicate link means
// the customer already ordered from this store and is not an error.
func (h *OrderPlacedHandler) linkCustomer(ctx context.Context, customerID, storeID uuid.UUID) error {
	link := ordering.NewCustomerStoreLink(customerID, storeID)
	if err := h.customerLinks.Create(ctx, link); err != nil {
		if errors.Is(err, shared.ErrDuplicateLink) {
			return nil
		}
		return err
	}
	return nil
}

func (h *OrderPlacedHandler) annotatePaymentIntent(ctx context.Context, order *ordering.Order, vendorStore *store.Store) {
	if h.annotator == nil {
		return
	}

	sessions, err := h.paymentSessions.FindByOrder(ctx, order.ID)
	if err != nil {
		h.logger.Warn("Failed to load payment sessions for annotation",
			zap.String("order_id", order.ID.String()), zap.Error(err))
		return
	}

	for _, session := range sessions {
		if session.Provider != ordering.ProviderStripe {
			continue
		}
		intentID := session.PaymentIntentID()
		if intentID == "" {
			continue
		}

		err := h.annotator.AnnotateIntent(ctx, intentID, payment.IntentAnnotation{
			OrderID:   order.ID.String(),
			StoreID:   vendorStore.ID.String(),
			StoreName: vendorStore.Name,
		})
		if err != nil {
			h.logger.Warn("Stripe annotation failed",
				zap.String("order_id", order.ID.String()),
				zap.String("payment_intent_id", intentID),
				zap.Error(err))
		}
		return
	}
}
