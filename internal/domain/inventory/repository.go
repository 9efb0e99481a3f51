package inventory

import (
	"context"

	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockBalanceRepository defines the interface for stock balance persistence
type StockBalanceRepository interface {
	// FindByID finds a stock balance by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockBalance, error)

	// FindByItemAndLocation finds the balance for an item-location combination
	FindByItemAndLocation(ctx context.Context, tenantID, itemID, locationID uuid.UUID) (*StockBalance, error)

	// GetOrCreate returns the existing balance or creates a zeroed one
	GetOrCreate(ctx context.Context, tenantID, itemID, locationID uuid.UUID) (*StockBalance, error)

	// FindAllForTenant finds all balances for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockBalance, error)

	// FindByLocation finds all balances at a location
	FindByLocation(ctx context.Context, tenantID, locationID uuid.UUID, filter shared.Filter) ([]StockBalance, error)

	// FindByItem finds all balances for an item across locations
	FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]StockBalance, error)

	// CountForTenant counts balances matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// SumQuantityByItem sums an item's quantity across all locations
	SumQuantityByItem(ctx context.Context, tenantID, itemID uuid.UUID) (decimal.Decimal, error)

	// Save creates or updates a stock balance
	Save(ctx context.Context, balance *StockBalance) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, balance *StockBalance) error
}

// MovementRepository defines the append-only interface for movement persistence.
// Movements are immutable: there is no update or delete.
type MovementRepository interface {
	// Create appends a movement to the ledger
	Create(ctx context.Context, movement *Movement) error

	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Movement, error)

	// FindByIDForTenant finds a movement by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Movement, error)

	// FindAllForTenant finds movements for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Movement, error)

	// FindByItem finds movements for an item
	FindByItem(ctx context.Context, tenantID, itemID uuid.UUID, filter shared.Filter) ([]Movement, error)

	// FindByLocation finds movements touching a location (as source or destination)
	FindByLocation(ctx context.Context, tenantID, locationID uuid.UUID, filter shared.Filter) ([]Movement, error)

	// FindByReference finds movements linked to a document
	FindByReference(ctx context.Context, tenantID uuid.UUID, refType ReferenceType, refID string) ([]Movement, error)

	// CountForTenant counts movements matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
