package payment

import (
	"context"
	"fmt"

	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"go.uber.org/zap"
)

// IntentAnnotation carries the order context written onto a provider
// payment object for reconciliation.
type IntentAnnotation struct {
	OrderID   string
	StoreID   string
	StoreName string
}

// PaymentAnnotator annotates provider payment objects with order context.
// Implementations must be safe to skip: callers treat failures as
// best-effort and never roll back order processing over them.
type PaymentAnnotator interface {
	AnnotateIntent(ctx context.Context, paymentIntentID string, annotation IntentAnnotation) error
}

// StripeAnnotator implements PaymentAnnotator against the Stripe API
type StripeAnnotator struct {
	logger *zap.Logger
}

// NewStripeAnnotator creates a new Stripe annotator
func NewStripeAnnotator(cfg config.StripeConfig, logger *zap.Logger) *StripeAnnotator {
	stripe.Key = cfg.APIKey
	return &StripeAnnotator{logger: logger}
}

// AnnotateIntent updates a PaymentIntent's description and metadata with
// the owning store and order ids
func (a *StripeAnnotator) AnnotateIntent(ctx context.Context, paymentIntentID string, annotation IntentAnnotation) error {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
		Description: stripe.String(
			fmt.Sprintf("Order %s for store %s", annotation.OrderID, annotation.StoreName),
		),
		Metadata: map[string]string{
			"order_id":   annotation.OrderID,
			"store_id":   annotation.StoreID,
			"store_name": annotation.StoreName,
		},
	}

	if _, err := paymentintent.Update(paymentIntentID, params); err != nil {
		a.logger.Error("Failed to annotate Stripe payment intent",
			zap.String("payment_intent_id", paymentIntentID),
			zap.String("order_id", annotation.OrderID),
			zap.Error(err))
		return fmt.Errorf("stripe: failed to update payment intent: %w", err)
	}

	a.logger.Info("Annotated Stripe payment intent",
		zap.String("payment_intent_id", paymentIntentID),
		zap.String("order_id", annotation.OrderID),
		zap.String("store_id", annotation.StoreID))
	return nil
}

// NopAnnotator is used when no Stripe key is configured
type NopAnnotator struct{}

// AnnotateIntent does nothing
func (NopAnnotator) AnnotateIntent(ctx context.Context, paymentIntentID string, annotation IntentAnnotation) error {
	return nil
}

var (
	_ PaymentAnnotator = (*StripeAnnotator)(nil)
	_ PaymentAnnotator = NopAnnotator{}
)
