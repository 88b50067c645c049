package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeCommission(t *testing.T) {
	t.Run("splits the total at the given rate", func(t *testing.T) {
		total := decimal.NewFromInt(10000)
		rate := decimal.NewFromFloat(0.02)

		c := ComputeCommission(total, rate)

		assert.True(t, c.Rate.Equal(rate))
		assert.True(t, c.Amount.Equal(decimal.NewFromInt(200)), "amount was %s", c.Amount)
		assert.True(t, c.Payout.Equal(decimal.NewFromInt(9800)), "payout was %s", c.Payout)
	})

	t.Run("rounds half up to whole units", func(t *testing.T) {
		// 333 * 0.015 = 4.995 and 333 * 0.985 = 328.005
		total := decimal.NewFromInt(333)
		rate := decimal.NewFromFloat(0.015)

		c := ComputeCommission(total, rate)

		assert.True(t, c.Amount.Equal(decimal.NewFromInt(5)), "amount was %s", c.Amount)
		assert.True(t, c.Payout.Equal(decimal.NewFromInt(328)), "payout was %s", c.Payout)
	})

	t.Run("zero rate yields zero commission", func(t *testing.T) {
		c := ComputeCommission(decimal.NewFromInt(5000), decimal.Zero)

		assert.True(t, c.Amount.IsZero())
		assert.True(t, c.Payout.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("zero total yields zero amounts", func(t *testing.T) {
		c := ComputeCommission(decimal.Zero, decimal.NewFromFloat(0.02))

		assert.True(t, c.Amount.IsZero())
		assert.True(t, c.Payout.IsZero())
	})
}

func TestOrder_ApplyCommission(t *testing.T) {
	t.Run("writes commission figures into metadata", func(t *testing.T) {
		order := &Order{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			Total:             decimal.NewFromInt(10000),
		}

		c := ComputeCommission(order.Total, decimal.NewFromFloat(0.02))
		order.ApplyCommission(c)

		require.NotNil(t, order.Metadata)
		assert.Equal(t, 0.02, order.Metadata[MetadataKeyCommissionRate])
		assert.Equal(t, int64(200), order.Metadata[MetadataKeyCommissionAmount])
		assert.Equal(t, int64(9800), order.Metadata[MetadataKeyPayoutEstimate])
		assert.Equal(t, PayoutStatusPending, order.Metadata[MetadataKeyPayoutStatus])
	})

	t.Run("overwrites previous figures", func(t *testing.T) {
		order := &Order{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
			Total:             decimal.NewFromInt(10000),
			Metadata: map[string]interface{}{
				MetadataKeyCommissionAmount: int64(999),
			},
		}

		order.ApplyCommission(ComputeCommission(order.Total, decimal.NewFromFloat(0.05)))

		assert.Equal(t, int64(500), order.Metadata[MetadataKeyCommissionAmount])
	})
}

func TestOrder_AssignStore(t *testing.T) {
	order := &Order{BaseAggregateRoot: shared.NewBaseAggregateRoot()}
	require.Nil(t, order.StoreID)

	storeID := uuid.New()
	order.AssignStore(storeID)

	require.NotNil(t, order.StoreID)
	assert.Equal(t, storeID, *order.StoreID)
}

func TestOrder_ProductIDs(t *testing.T) {
	t.Run("deduplicates product ids across lines", func(t *testing.T) {
		productA := uuid.New()
		productB := uuid.New()

		order := &Order{
			Items: []OrderItem{
				{ProductID: productA},
				{ProductID: productB},
				{ProductID: productA},
			},
		}

		ids := order.ProductIDs()
		assert.Equal(t, []uuid.UUID{productA, productB}, ids)
	})

	t.Run("empty order yields no ids", func(t *testing.T) {
		order := &Order{}
		assert.Empty(t, order.ProductIDs())
	})
}

func TestNewOrderPlacedEvent(t *testing.T) {
	orderID := uuid.New()
	event := NewOrderPlacedEvent(orderID)

	assert.Equal(t, EventTypeOrderPlaced, event.EventType())
	assert.Equal(t, AggregateTypeOrder, event.AggregateType())
	assert.Equal(t, orderID, event.AggregateID())
	assert.Equal(t, orderID, event.OrderID)
	assert.NotEqual(t, uuid.Nil, event.EventID())
}
