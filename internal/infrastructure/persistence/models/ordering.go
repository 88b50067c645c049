package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderModel is the persistence model for the Order domain entity.
// Totals are kept in minor currency units.
type OrderModel struct {
	BaseModel
	DisplayID    int              `gorm:"not null;default:0"`
	CustomerID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	StoreID      *uuid.UUID       `gorm:"type:uuid;index"`
	CurrencyCode string           `gorm:"type:varchar(3);not null"`
	Total        decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Metadata     JSONMap          `gorm:"type:jsonb;default:'{}'"`
	PlacedAt     time.Time        `gorm:"not null"`
	Items        []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *ordering.Order {
	items := make([]ordering.OrderItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = item.ToDomain()
	}
	return &ordering.Order{
		BaseAggregateRoot: aggregateRootFromBase(m.BaseModel),
		DisplayID:         m.DisplayID,
		CustomerID:        m.CustomerID,
		StoreID:           m.StoreID,
		CurrencyCode:      m.CurrencyCode,
		Total:             m.Total,
		Metadata:          m.Metadata,
		PlacedAt:          m.PlacedAt,
		Items:             items,
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *ordering.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.DisplayID = o.DisplayID
	m.CustomerID = o.CustomerID
	m.StoreID = o.StoreID
	m.CurrencyCode = o.CurrencyCode
	m.Total = o.Total
	m.Metadata = o.Metadata
	m.PlacedAt = o.PlacedAt
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = OrderItemModelFromDomain(item)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *ordering.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for order lines.
type OrderItemModel struct {
	BaseModel
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title     string          `gorm:"type:varchar(255);not null"`
	Quantity  int             `gorm:"not null;default:1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain() ordering.OrderItem {
	return ordering.OrderItem{
		BaseEntity: m.BaseModel.ToDomain(),
		OrderID:    m.OrderID,
		ProductID:  m.ProductID,
		Title:      m.Title,
		Quantity:   m.Quantity,
		UnitPrice:  m.UnitPrice,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain OrderItem.
func OrderItemModelFromDomain(item ordering.OrderItem) OrderItemModel {
	m := OrderItemModel{
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Title:     item.Title,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	}
	m.FromDomainBaseEntity(item.BaseEntity)
	return m
}

// PaymentSessionModel is the persistence model for provider payment sessions.
type PaymentSessionModel struct {
	BaseModel
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Provider string    `gorm:"type:varchar(50);not null"`
	Data     JSONMap   `gorm:"type:jsonb;default:'{}'"`
}

// TableName returns the table name for GORM
func (PaymentSessionModel) TableName() string {
	return "payment_sessions"
}

// ToDomain converts the persistence model to a domain PaymentSession.
func (m *PaymentSessionModel) ToDomain() *ordering.PaymentSession {
	return &ordering.PaymentSession{
		BaseEntity: m.BaseModel.ToDomain(),
		OrderID:    m.OrderID,
		Provider:   m.Provider,
		Data:       m.Data,
	}
}

// PaymentSessionModelFromDomain creates a persistence model from a domain PaymentSession.
func PaymentSessionModelFromDomain(s *ordering.PaymentSession) *PaymentSessionModel {
	m := &PaymentSessionModel{
		OrderID:  s.OrderID,
		Provider: s.Provider,
		Data:     s.Data,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// CustomerStoreLinkModel joins customers to the stores they ordered from.
// The (customer_id, store_id) pair is unique among non-deleted rows.
type CustomerStoreLinkModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `gorm:"not null"`
	DeletedAt  gorm.DeletedAt
}

// TableName returns the table name for GORM
func (CustomerStoreLinkModel) TableName() string {
	return "customer_store_links"
}

// ToDomain converts the persistence model to a domain CustomerStoreLink.
func (m *CustomerStoreLinkModel) ToDomain() ordering.CustomerStoreLink {
	return ordering.CustomerStoreLink{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		StoreID:    m.StoreID,
	}
}

// CustomerStoreLinkModelFromDomain creates a persistence model from a domain link.
func CustomerStoreLinkModelFromDomain(l *ordering.CustomerStoreLink) *CustomerStoreLinkModel {
	return &CustomerStoreLinkModel{
		ID:         l.ID,
		CustomerID: l.CustomerID,
		StoreID:    l.StoreID,
		CreatedAt:  time.Now(),
	}
}
