package commission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/domain/store"
	"github.com/marketplace/backend/internal/infrastructure/cache"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/event"
	"github.com/marketplace/backend/internal/infrastructure/payment"
)

// MockOrderRepository is a mock implementation of ordering.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockPaymentSessionRepository is a mock implementation of ordering.PaymentSessionRepository
type MockPaymentSessionRepository struct {
	mock.Mock
}

func (m *MockPaymentSessionRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ordering.PaymentSession, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.PaymentSession), args.Error(1)
}

func (m *MockPaymentSessionRepository) Save(ctx context.Context, session *ordering.PaymentSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// MockCustomerStoreLinkRepository is a mock implementation of ordering.CustomerStoreLinkRepository
type MockCustomerStoreLinkRepository struct {
	mock.Mock
}

func (m *MockCustomerStoreLinkRepository) Create(ctx context.Context, link *ordering.CustomerStoreLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockCustomerStoreLinkRepository) Exists(ctx context.Context, customerID, storeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, customerID, storeID)
	return args.Bool(0), args.Error(1)
}

// MockProductStoreLinkRepository is a mock implementation of catalog.ProductStoreLinkRepository
type MockProductStoreLinkRepository struct {
	mock.Mock
}

func (m *MockProductStoreLinkRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*catalog.ProductStoreLink, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductStoreLink), args.Error(1)
}

func (m *MockProductStoreLinkRepository) FindByProducts(ctx context.Context, productIDs []uuid.UUID) ([]catalog.ProductStoreLink, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductStoreLink), args.Error(1)
}

func (m *MockProductStoreLinkRepository) Create(ctx context.Context, link *catalog.ProductStoreLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockProductStoreLinkRepository) Remove(ctx context.Context, productID, storeID uuid.UUID) error {
	args := m.Called(ctx, productID, storeID)
	return args.Error(0)
}

// MockStoreRepository is a mock implementation of store.StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) FindAll(ctx context.Context, filter shared.Filter) ([]store.Store, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]store.Store), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreRepository) Save(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) Update(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAnnotator is a mock implementation of payment.PaymentAnnotator
type MockAnnotator struct {
	mock.Mock
}

func (m *MockAnnotator) AnnotateIntent(ctx context.Context, paymentIntentID string, annotation payment.IntentAnnotation) error {
	args := m.Called(ctx, paymentIntentID, annotation)
	return args.Error(0)
}

type handlerMocks struct {
	orders        *MockOrderRepository
	sessions      *MockPaymentSessionRepository
	customerLinks *MockCustomerStoreLinkRepository
	storeLinks    *MockProductStoreLinkRepository
	stores        *MockStoreRepository
	annotator     *MockAnnotator
}

func newTestHandler(t *testing.T, rate float64) (*OrderPlacedHandler, *handlerMocks) {
	t.Helper()

	m := &handlerMocks{
		orders:        new(MockOrderRepository),
		sessions:      new(MockPaymentSessionRepository),
		customerLinks: new(MockCustomerStoreLinkRepository),
		storeLinks:    new(MockProductStoreLinkRepository),
		stores:        new(MockStoreRepository),
		annotator:     new(MockAnnotator),
	}

	h := NewOrderPlacedHandler(
		m.orders, m.sessions, m.customerLinks, m.storeLinks, m.stores,
		m.annotator, config.CommissionConfig{Rate: rate}, zap.NewNop())
	return h, m
}

func testOrder(total int64) *ordering.Order {
	productID := uuid.New()
	return &ordering.Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DisplayID:         42,
		CustomerID:        uuid.New(),
		CurrencyCode:      "eur",
		Total:             decimal.NewFromInt(total),
		Metadata:          map[string]interface{}{},
		PlacedAt:          time.Now(),
		Items: []ordering.OrderItem{
			{
				BaseEntity: shared.NewBaseEntity(),
				ProductID:  productID,
				Title:      "Ceramic Mug",
				Quantity:   2,
				UnitPrice:  decimal.NewFromInt(total / 2),
			},
		},
	}
}

func testStore() *store.Store {
	return &store.Store{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              "Jane's Goods",
		OwnerUserID:       uuid.New(),
	}
}

func TestOrderPlacedHandler_RecordsCommission(t *testing.T) {
	h, m := newTestHandler(t, 0.10)

	order := testOrder(1000)
	vendorStore := testStore()

	m.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	m.storeLinks.On("FindByProducts", mock.Anything, mock.Anything).Return(
		[]catalog.ProductStoreLink{{ProductID: order.Items[0].ProductID, StoreID: vendorStore.ID}}, nil)
	m.stores.On("FindByID", mock.Anything, vendorStore.ID).Return(vendorStore, nil)
	m.customerLinks.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.orders.On("Update", mock.Anything, order).Return(nil)
	m.sessions.On("FindByOrder", mock.Anything, order.ID).Return([]ordering.PaymentSession{}, nil)

	err := h.Handle(context.Background(), ordering.NewOrderPlacedEvent(order.ID))
	require.NoError(t, err)

	require.NotNil(t, order.StoreID)
	assert.Equal(t, vendorStore.ID, *order.StoreID)
	assert.Equal(t, 0.10, order.Metadata[ordering.MetadataKeyCommissionRate])
	assert.Equal(t, int64(100), order.Metadata[ordering.MetadataKeyCommissionAmount])
	assert.Equal(t, int64(900), order.Metadata[ordering.MetadataKeyPayoutEstimate])
	assert.Equal(t, ordering.PayoutStatusPending, order.Metadata[ordering.MetadataKeyPayoutStatus])

	m.orders.AssertExpectations(t)
}

func TestOrderPlacedHandler_RoundsHalfUp(t *testing.T) {
	h, m := newTestHandler(t, 0.15)

	order := testOrder(333) // 333 * 0.15 = 49.95 -> 50, payout 283.05 -> 283
	vendorStore := testStore()

	m.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	m.storeLinks.On("FindByProducts", mock.Anything, mock.Anything).Return(
		[]catalog.ProductStoreLink{{StoreID: vendorStore.ID}}, nil)
	m.stores.On("FindByID", mock.Anything, vendorStore.ID).Return(vendorStore, nil)
	m.customerLinks.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.orders.On("Update", mock.Anything, order).Return(nil)
	m.sessions.On("FindByOrder", mock.Anything, order.ID).Return([]ordering.PaymentSession{}, nil)

	err := h.Handle(context.Background(), ordering.NewOrderPlacedEvent(order.ID))
	require.NoError(t, err)

	assert.Equal(t, int64(50), order.Metadata[ordering.MetadataKeyCommissionAmount])
	assert.Equal(t, int64(283), order.Metadata[ordering.MetadataKeyPayoutEstimate])
}

func TestOrderPlacedHandler_ZeroRateIsHonored(t *testing.T) {
	h, m := newTestHandler(t, 0)

	order := testOrder(1000)
	vendorStore := testStore()

	m.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	m.storeLinks.On("FindByProducts", mock.Anything, mock.Anything).Return(
		[]catalog.ProductStoreLink{{StoreID: vendorStore.ID}}, nil)
	m.stores.On("FindByID", mock.Anything, vendorStore.ID).Return(vendorStore, nil)
	m.customerLinks.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.orders.On("Update", mock.Anything, order).Return(nil)
	m.sessions.On("FindByOrder", mock.Anything, order.ID).Return([]ordering.PaymentSession{}, nil)

	err := h.Handle(context.Background(), ordering.NewOrderPlacedEvent(order.ID))
	require.NoError(t, err)

	// A commission-free platform takes nothing and pays out everything.
	assert.Equal(t, 0.0, order.Metadata[ordering.MetadataKeyCommissionRate])
	assert.Equal(t, int64(0), order.Metadata[ordering.MetadataKeyCommissionAmount])
	assert.Equal(t, int64(1000), order.Metadata[ordering.MetadataKeyPayoutEstimate])
}

func TestOrderPlacedHandler_OutOfRangeRateFallsBack(t *testing.T) {
	for _, rate := range []float64{-0.05, 1.0, 2.5} {
		h, _ := newTestHandler(t, rate)
		assert.True(t, h.rate.Equal(decimal.NewFromFloat(DefaultRate)),
			"rate %v should fall back to the default", rate)
	}
}

func TestOrderPlacedHandler_DuplicateCustomerLinkIsNoOp(t *testing.T) {
	h, m := newTestHandler(t, 0.10)

	order := testOrder(500)
	vendorStore := testStore()

	m.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	m.storeLinks.On("FindByProducts", mock.Anything, mock.Anything).Return(
		[]catalog.ProductStoreLink{{StoreID: vendorStore.ID}}, nil)
	m.stores.On("FindByID", mock.Anything, vendorStore.ID).Return(vendorStore, nil)
	m.customerLinks.On("Create", mock.Anything, mock.Anything).Return(shared.ErrDuplicateLink)
	m.orders.On("Update", mock.Anything, order).Return(nil)
	m.sessions.On("FindByOrder", mock.Anything, order.ID).Return([]ordering.PaymentSession{}, nil)

	err := h.Handle(context.Background(), ordering.NewOrderPlacedEvent(order.ID))
	require.NoError(t, err)
}

func TestOrderPlacedHandler_NoStoreLinkedSkips(t *testing.T) {
	h, m := newTestHandler(t, 0.10)

	order := testOrder(500)

	m.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	m.storeLinks.On("FindByProducts", mock.Anything, mock.Anything).Return(
		[]catalog.ProductStoreLink{}, nil)

	err := h.Handle(context.Background(), ordering.NewOrderPlacedEvent(order.ID))
	require.NoError(t, err)

	assert.Nil(t, order.StoreID)
	m.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOrderPlacedHandler_FirstStoreWinsOnMixedOrders(t *testing.T) {
	h, m := newTestHandler(t, 0.10)

	order := testOrder(500)
	first := testStore()
	second := testStore()

	m.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	m.storeLinks.On("FindByProducts", mock.Anything, mock.Anything).Return(
		[]catalog.ProductStoreLink{{StoreID: first.ID}, {StoreID: second.ID}}, nil)
	m.stores.On("FindByID", mock.Anything, first.ID).Return(first, nil)
	m.customerLinks.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.orders.On("Update", mock.Anything, order).Return(nil)
	m.sessions.On("FindByOrder", mock.Anything, order.ID).Return([]ordering.PaymentSession{}, nil)

	err := h.Handle(context.Background(), ordering.NewOrderPlacedEvent(order.ID))
	require.NoError(t, err)

	require.NotNil(t, order.StoreID)
	assert.Equal(t, first.ID, *order.StoreID)
	m.stores.AssertNotCalled(t, "FindByID", mock.Anything, second.ID)
}

func TestOrderPlacedHandler_AnnotatesStripeIntent(t *testing.T) {
	h, m := newTestHandler(t, 0.10)

	order := testOrder(500)
	vendorStore := testStore()

	m.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	m.storeLinks.On("FindByProducts", mock.Anything, mock.Anything).Return(
		[]catalog.ProductStoreLink{{StoreID: vendorStore.ID}}, nil)
	m.stores.On("FindByID", mock.Anything, vendorStore.ID).Return(vendorStore, nil)
	m.customerLinks.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.orders.On("Update", mock.Anything, order).Return(nil)
	m.sessions.On("FindByOrder", mock.Anything, order.ID).Return([]ordering.PaymentSession{
		{OrderID: order.ID, Provider: "manual", Data: map[string]interface{}{"id": "man_1"}},
		{OrderID: order.ID, Provider: ordering.ProviderStripe, Data: map[string]interface{}{"id": "pi_123"}},
	}, nil)
	m.annotator.On("AnnotateIntent", mock.Anything, "pi_123", payment.IntentAnnotation{
		OrderID:   order.ID.String(),
		StoreID:   vendorStore.ID.String(),
		StoreName: vendorStore.Name,
	}).Return(nil)

	err := h.Handle(context.Background(), ordering.NewOrderPlacedEvent(order.ID))
	require.NoError(t, err)

	m.annotator.AssertExpectations(t)
}

func TestOrderPlacedHandler_AnnotationFailureIsSwallowed(t *testing.T) {
	h, m := newTestHandler(t, 0.10)

	order := testOrder(500)
	vendorStore := testStore()

	m.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	m.storeLinks.On("FindByProducts", mock.Anything, mock.Anything).Return(
		[]catalog.ProductStoreLink{{StoreID: vendorStore.ID}}, nil)
	m.stores.On("FindByID", mock.Anything, vendorStore.ID).Return(vendorStore, nil)
	m.customerLinks.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.orders.On("Update", mock.Anything, order).Return(nil)
	m.sessions.On("FindByOrder", mock.Anything, order.ID).Return([]ordering.PaymentSession{
		{OrderID: order.ID, Provider: ordering.ProviderStripe, Data: map[string]interface{}{"id": "pi_123"}},
	}, nil)
	m.annotator.On("AnnotateIntent", mock.Anything, "pi_123", mock.Anything).
		Return(errors.New("stripe down"))

	err := h.Handle(context.Background(), ordering.NewOrderPlacedEvent(order.ID))
	require.NoError(t, err)
}

func TestOrderPlacedHandler_RedeliveredEventSkipped(t *testing.T) {
	h, m := newTestHandler(t, 0.10)

	order := testOrder(1000)
	vendorStore := testStore()

	m.orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	m.storeLinks.On("FindByProducts", mock.Anything, mock.Anything).Return(
		[]catalog.ProductStoreLink{{StoreID: vendorStore.ID}}, nil)
	m.stores.On("FindByID", mock.Anything, vendorStore.ID).Return(vendorStore, nil)
	m.customerLinks.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.orders.On("Update", mock.Anything, order).Return(nil)
	m.sessions.On("FindByOrder", mock.Anything, order.ID).Return([]ordering.PaymentSession{}, nil)

	idempotencyStore := cache.NewInMemoryIdempotencyStore()
	defer idempotencyStore.Close()

	idempotent := event.NewIdempotentHandler(h, idempotencyStore, zap.NewNop())

	placed := ordering.NewOrderPlacedEvent(order.ID)

	require.NoError(t, idempotent.Handle(context.Background(), placed))
	// Same event ID again: the wrapped handler must not run a second time.
	require.NoError(t, idempotent.Handle(context.Background(), placed))

	m.orders.AssertNumberOfCalls(t, "Update", 1)
}
