package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// MetadataKeyLogoURL is the store metadata key carrying the logo URL
const MetadataKeyLogoURL = "logo_url"

// Store represents a vendor (tenant seller account) in the marketplace.
// It is the aggregate root for store-related operations.
type Store struct {
	shared.BaseAggregateRoot
	Name                string
	OwnerUserID         uuid.UUID
	DefaultCurrencyCode string
	Metadata            map[string]interface{}
}

// NewStore creates a new store owned by the given user
func NewStore(name string, ownerUserID uuid.UUID) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_STORE_NAME", "Store name is required")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot exceed 200 characters")
	}

	s := &Store{
		BaseAggregateRoot:   shared.NewBaseAggregateRoot(),
		Name:                name,
		OwnerUserID:         ownerUserID,
		DefaultCurrencyCode: "eur",
		Metadata:            map[string]interface{}{},
	}
	s.AddDomainEvent(NewStoreCreatedEvent(s))
	return s, nil
}

// LogoURL returns the logo URL from store metadata, empty when unset
func (s *Store) LogoURL() string {
	if v, ok := s.Metadata[MetadataKeyLogoURL].(string); ok {
		return v
	}
	return ""
}

// SetLogoURL stores the logo URL in store metadata
func (s *Store) SetLogoURL(url string) {
	if s.Metadata == nil {
		s.Metadata = map[string]interface{}{}
	}
	s.Metadata[MetadataKeyLogoURL] = url
	s.UpdatedAt = time.Now()
}
