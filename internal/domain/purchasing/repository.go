package purchasing

import (
	"context"

	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseRepository defines the interface for purchase persistence.
// Purchases are loaded with their items; saving persists both.
type PurchaseRepository interface {
	// FindByID finds a purchase (with items) by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)

	// FindByIDForTenant finds a purchase (with items) by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Purchase, error)

	// FindAllForTenant finds purchases for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Purchase, error)

	// CountForTenant counts purchases matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a purchase and its items
	Save(ctx context.Context, purchase *Purchase) error

	// SaveWithLock saves the header with optimistic locking and upserts items
	SaveWithLock(ctx context.Context, purchase *Purchase) error
}
