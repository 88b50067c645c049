package models

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/store"
)

// StoreModel is the persistence model for the Store domain entity.
type StoreModel struct {
	BaseModel
	Name                string     `gorm:"type:varchar(200);not null"`
	OwnerUserID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	DefaultCurrencyCode string     `gorm:"type:varchar(3);not null;default:'eur'"`
	Metadata            JSONMap    `gorm:"type:jsonb;default:'{}'"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store entity.
func (m *StoreModel) ToDomain() *store.Store {
	return &store.Store{
		BaseAggregateRoot:   aggregateRootFromBase(m.BaseModel),
		Name:                m.Name,
		OwnerUserID:         m.OwnerUserID,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		Metadata:            m.Metadata,
	}
}

// FromDomain populates the persistence model from a domain Store entity.
func (m *StoreModel) FromDomain(s *store.Store) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.OwnerUserID = s.OwnerUserID
	m.DefaultCurrencyCode = s.DefaultCurrencyCode
	m.Metadata = s.Metadata
}

// StoreModelFromDomain creates a new persistence model from a domain Store entity.
func StoreModelFromDomain(s *store.Store) *StoreModel {
	m := &StoreModel{}
	m.FromDomain(s)
	return m
}

// StoreAddressModel is the persistence model for the StoreAddress domain entity.
// store_id is unique among non-deleted rows via a partial index.
type StoreAddressModel struct {
	BaseModel
	StoreID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Address1    string    `gorm:"type:varchar(255);not null"`
	Address2    string    `gorm:"type:varchar(255)"`
	City        string    `gorm:"type:varchar(100);not null"`
	PostalCode  string    `gorm:"type:varchar(20);not null"`
	Province    string    `gorm:"type:varchar(100)"`
	CountryCode string    `gorm:"type:varchar(2);not null"`
	Phone       string    `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (StoreAddressModel) TableName() string {
	return "store_addresses"
}

// ToDomain converts the persistence model to a domain StoreAddress entity.
func (m *StoreAddressModel) ToDomain() *store.StoreAddress {
	return &store.StoreAddress{
		BaseAggregateRoot: aggregateRootFromBase(m.BaseModel),
		StoreID:           m.StoreID,
		Address1:          m.Address1,
		Address2:          m.Address2,
		City:              m.City,
		PostalCode:        m.PostalCode,
		Province:          m.Province,
		CountryCode:       m.CountryCode,
		Phone:             m.Phone,
	}
}

// FromDomain populates the persistence model from a domain StoreAddress entity.
func (m *StoreAddressModel) FromDomain(a *store.StoreAddress) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.StoreID = a.StoreID
	m.Address1 = a.Address1
	m.Address2 = a.Address2
	m.City = a.City
	m.PostalCode = a.PostalCode
	m.Province = a.Province
	m.CountryCode = a.CountryCode
	m.Phone = a.Phone
}

// StoreAddressModelFromDomain creates a new persistence model from a domain StoreAddress entity.
func StoreAddressModelFromDomain(a *store.StoreAddress) *StoreAddressModel {
	m := &StoreAddressModel{}
	m.FromDomain(a)
	return m
}
