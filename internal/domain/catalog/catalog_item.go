package catalog

import (
	"strings"
	"time"

	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemKind distinguishes physical products from billable services
type ItemKind string

const (
	ItemKindProduct ItemKind = "PRODUCT"
	ItemKindService ItemKind = "SERVICE"
)

// IsValid returns true if the kind is a known ItemKind
func (k ItemKind) IsValid() bool {
	return k == ItemKindProduct || k == ItemKindService
}

// String returns the string representation of ItemKind
func (k ItemKind) String() string {
	return string(k)
}

// CatalogItem represents a product or service offered by a tenant.
// Only items of kind PRODUCT are stockable and participate in ledger movements.
type CatalogItem struct {
	shared.TenantAggregateRoot
	Kind      ItemKind        `gorm:"type:varchar(20);not null;index"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Unit      string          `gorm:"type:varchar(20);not null"`             // Unit of measure (e.g., "pcs", "kg", "h")
	BaseCost  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Acquisition cost per unit
	SalePrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Billing price per unit
	MinStock  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Minimum stock threshold for alerts
	Active    bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CatalogItem) TableName() string {
	return "catalog_items"
}

// NewCatalogItem creates a new catalog item
func NewCatalogItem(tenantID uuid.UUID, kind ItemKind, name, unit string) (*CatalogItem, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Item kind must be PRODUCT or SERVICE")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot exceed 200 characters")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}

	return &CatalogItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Kind:                kind,
		Name:                strings.TrimSpace(name),
		Unit:                unit,
		BaseCost:            decimal.Zero,
		SalePrice:           decimal.Zero,
		MinStock:            decimal.Zero,
		Active:              true,
	}, nil
}

// IsStockable returns true if the item participates in inventory movements
func (i *CatalogItem) IsStockable() bool {
	return i.Kind == ItemKindProduct
}

// Update updates the item's display fields
func (i *CatalogItem) Update(name, unit string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if strings.TrimSpace(unit) == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}

	i.Name = strings.TrimSpace(name)
	i.Unit = unit
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetPricing sets the base cost and sale price
func (i *CatalogItem) SetPricing(baseCost, salePrice decimal.Decimal) error {
	if baseCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Base cost cannot be negative")
	}
	if salePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}

	i.BaseCost = baseCost
	i.SalePrice = salePrice
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetMinStock sets the minimum stock threshold
func (i *CatalogItem) SetMinStock(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum stock cannot be negative")
	}
	if !i.IsStockable() {
		return shared.NewDomainError("NOT_STOCKABLE", "Services do not carry stock thresholds")
	}

	i.MinStock = quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Deactivate soft-deletes the item. Items referenced by movements or work order
// lines are never removed, only deactivated.
func (i *CatalogItem) Deactivate() {
	i.Active = false
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// Activate re-enables a previously deactivated item
func (i *CatalogItem) Activate() {
	i.Active = true
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}
