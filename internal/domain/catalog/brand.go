package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/marketplace/backend/internal/domain/shared"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Brand is a labeling taxonomy entity attachable to products,
// independent of any vendor store.
type Brand struct {
	shared.BaseAggregateRoot
	Name        string
	Handle      string // unique slug among non-deleted brands
	LogoURL     string
	Description string
}

// NewBrand creates a brand. When handle is empty it is derived from the name.
func NewBrand(name, handle, logoURL, description string) (*Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_BRAND_NAME", "Name is required")
	}

	if handle == "" {
		handle = Slugify(name)
	}
	if handle == "" {
		return nil, shared.NewDomainError("INVALID_BRAND_HANDLE", "Handle cannot be derived from name")
	}

	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Handle:            handle,
		LogoURL:           logoURL,
		Description:       description,
	}, nil
}

// UpdateBrandInput carries optional brand fields; nil means "leave unchanged"
type UpdateBrandInput struct {
	Name        *string
	Handle      *string
	LogoURL     *string
	Description *string
}

// Apply updates the brand from the given input
func (b *Brand) Apply(in UpdateBrandInput) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return shared.NewDomainError("INVALID_BRAND_NAME", "Name is required")
		}
		b.Name = name
	}
	if in.Handle != nil {
		if *in.Handle == "" {
			return shared.NewDomainError("INVALID_BRAND_HANDLE", "Handle cannot be empty")
		}
		b.Handle = *in.Handle
	}
	if in.LogoURL != nil {
		b.LogoURL = *in.LogoURL
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	b.UpdatedAt = time.Now()
	return nil
}

// Slugify converts a name to a URL-safe handle: lowercase, runs of
// non-alphanumeric characters collapsed to "-", no leading/trailing hyphen.
func Slugify(name string) string {
	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
