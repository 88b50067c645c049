package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// StoreAddress is the one-per-store business address.
// store_id is unique among non-deleted rows.
type StoreAddress struct {
	shared.BaseAggregateRoot
	StoreID     uuid.UUID
	Address1    string
	Address2    string
	City        string
	PostalCode  string
	Province    string
	CountryCode string // ISO 3166-1 alpha-2, stored lowercase
	Phone       string
}

// AddressInput carries the address fields supplied by a caller
type AddressInput struct {
	Address1    string `json:"address_1"`
	Address2    string `json:"address_2"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Province    string `json:"province"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
}

// Validate checks that the required address fields are present
func (in AddressInput) Validate() error {
	if in.Address1 == "" || in.City == "" || in.PostalCode == "" || in.CountryCode == "" {
		return shared.NewDomainError("INVALID_ADDRESS",
			"address_1, city, postal_code, and country_code are required")
	}
	return nil
}

// NewStoreAddress creates an address for the given store
func NewStoreAddress(storeID uuid.UUID, in AddressInput) (*StoreAddress, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	return &StoreAddress{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		StoreID:           storeID,
		Address1:          strings.TrimSpace(in.Address1),
		Address2:          strings.TrimSpace(in.Address2),
		City:              strings.TrimSpace(in.City),
		PostalCode:        strings.TrimSpace(in.PostalCode),
		Province:          strings.TrimSpace(in.Province),
		CountryCode:       strings.ToLower(strings.TrimSpace(in.CountryCode)),
		Phone:             strings.TrimSpace(in.Phone),
	}, nil
}

// Apply overwrites the address fields from the given input
func (a *StoreAddress) Apply(in AddressInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	a.Address1 = strings.TrimSpace(in.Address1)
	a.Address2 = strings.TrimSpace(in.Address2)
	a.City = strings.TrimSpace(in.City)
	a.PostalCode = strings.TrimSpace(in.PostalCode)
	a.Province = strings.TrimSpace(in.Province)
	a.CountryCode = strings.ToLower(strings.TrimSpace(in.CountryCode))
	a.Phone = strings.TrimSpace(in.Phone)
	a.UpdatedAt = time.Now()
	return nil
}
