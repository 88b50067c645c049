package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its lines by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates an order together with its lines
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing order. Lines are immutable after
// placement, so only the order row is written.
func (r *GormOrderRepository) Update(ctx context.Context, order *ordering.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Omit("Items").Save(model).Error
}

// GormPaymentSessionRepository implements ordering.PaymentSessionRepository using GORM
type GormPaymentSessionRepository struct {
	db *gorm.DB
}

// NewGormPaymentSessionRepository creates a new GormPaymentSessionRepository
func NewGormPaymentSessionRepository(db *gorm.DB) *GormPaymentSessionRepository {
	return &GormPaymentSessionRepository{db: db}
}

// FindByOrder finds the payment sessions recorded for an order
func (r *GormPaymentSessionRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ordering.PaymentSession, error) {
	var sessionModels []models.PaymentSessionModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&sessionModels).Error; err != nil {
		return nil, err
	}

	sessions := make([]ordering.PaymentSession, len(sessionModels))
	for i, model := range sessionModels {
		sessions[i] = *model.ToDomain()
	}
	return sessions, nil
}

// Save creates a payment session
func (r *GormPaymentSessionRepository) Save(ctx context.Context, session *ordering.PaymentSession) error {
	model := models.PaymentSessionModelFromDomain(session)
	return r.db.WithContext(ctx).Create(model).Error
}

// GormCustomerStoreLinkRepository implements ordering.CustomerStoreLinkRepository using GORM
type GormCustomerStoreLinkRepository struct {
	db *gorm.DB
}

// NewGormCustomerStoreLinkRepository creates a new GormCustomerStoreLinkRepository
func NewGormCustomerStoreLinkRepository(db *gorm.DB) *GormCustomerStoreLinkRepository {
	return &GormCustomerStoreLinkRepository{db: db}
}

// Create links a customer to a store. A pair already linked maps to
// shared.ErrDuplicateLink so callers can treat redelivery as a no-op.
func (r *GormCustomerStoreLinkRepository) Create(ctx context.Context, link *ordering.CustomerStoreLink) error {
	model := models.CustomerStoreLinkModelFromDomain(link)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrDuplicateLink
		}
		return err
	}
	return nil
}

// Exists reports whether the customer is already linked to the store
func (r *GormCustomerStoreLinkRepository) Exists(ctx context.Context, customerID, storeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CustomerStoreLinkModel{}).
		Where("customer_id = ? AND store_id = ?", customerID, storeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
