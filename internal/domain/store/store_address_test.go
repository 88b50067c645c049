package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddressInput() AddressInput {
	return AddressInput{
		Address1:    "Rua Augusta 100",
		Address2:    "2nd floor",
		City:        "Lisbon",
		PostalCode:  "1100-053",
		Province:    "Lisboa",
		CountryCode: "PT",
		Phone:       "+351 210 000 000",
	}
}

func TestAddressInput_Validate(t *testing.T) {
	t.Run("accepts a complete input", func(t *testing.T) {
		assert.NoError(t, validAddressInput().Validate())
	})

	t.Run("optional fields may be empty", func(t *testing.T) {
		in := validAddressInput()
		in.Address2 = ""
		in.Province = ""
		in.Phone = ""
		assert.NoError(t, in.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*AddressInput)
	}{
		{"missing address_1", func(in *AddressInput) { in.Address1 = "" }},
		{"missing city", func(in *AddressInput) { in.City = "" }},
		{"missing postal_code", func(in *AddressInput) { in.PostalCode = "" }},
		{"missing country_code", func(in *AddressInput) { in.CountryCode = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validAddressInput()
			tt.mutate(&in)

			err := in.Validate()
			require.Error(t, err)

			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_ADDRESS", domainErr.Code)
		})
	}
}

func TestNewStoreAddress(t *testing.T) {
	storeID := uuid.New()

	t.Run("creates address with normalized fields", func(t *testing.T) {
		in := validAddressInput()
		in.Address1 = "  Rua Augusta 100  "
		in.CountryCode = "  PT  "

		addr, err := NewStoreAddress(storeID, in)
		require.NoError(t, err)
		require.NotNil(t, addr)

		assert.Equal(t, storeID, addr.StoreID)
		assert.Equal(t, "Rua Augusta 100", addr.Address1)
		assert.Equal(t, "pt", addr.CountryCode)
		assert.Equal(t, "Lisbon", addr.City)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		in := validAddressInput()
		in.City = ""

		addr, err := NewStoreAddress(storeID, in)
		require.Error(t, err)
		assert.Nil(t, addr)
	})
}

func TestStoreAddress_Apply(t *testing.T) {
	t.Run("overwrites every field", func(t *testing.T) {
		addr, err := NewStoreAddress(uuid.New(), validAddressInput())
		require.NoError(t, err)

		err = addr.Apply(AddressInput{
			Address1:    "Gran Via 1",
			City:        "Madrid",
			PostalCode:  "28013",
			CountryCode: "ES",
		})
		require.NoError(t, err)

		assert.Equal(t, "Gran Via 1", addr.Address1)
		assert.Equal(t, "Madrid", addr.City)
		assert.Equal(t, "es", addr.CountryCode)
		assert.Empty(t, addr.Address2)
		assert.Empty(t, addr.Phone)
	})

	t.Run("invalid input leaves the address unchanged", func(t *testing.T) {
		addr, err := NewStoreAddress(uuid.New(), validAddressInput())
		require.NoError(t, err)

		err = addr.Apply(AddressInput{City: "Madrid"})
		require.Error(t, err)
		assert.Equal(t, "Lisbon", addr.City)
	})
}
