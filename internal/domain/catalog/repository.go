package catalog

import (
	"context"

	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CatalogItemRepository defines the interface for catalog item persistence
type CatalogItemRepository interface {
	// FindByID finds a catalog item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*CatalogItem, error)

	// FindByIDForTenant finds a catalog item by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*CatalogItem, error)

	// FindAllForTenant finds all catalog items for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]CatalogItem, error)

	// CountForTenant counts catalog items matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a catalog item
	Save(ctx context.Context, item *CatalogItem) error
}

// LocationRepository defines the interface for location persistence
type LocationRepository interface {
	// FindByID finds a location by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)

	// FindByIDForTenant finds a location by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Location, error)

	// FindAllForTenant finds all locations for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Location, error)

	// CountForTenant counts locations matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a location
	Save(ctx context.Context, location *Location) error
}
