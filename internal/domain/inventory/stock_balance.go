package inventory

import (
	"time"

	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockBalance holds the current quantity of one catalog item at one location.
// It is the aggregate root for balance mutations; the composite identifier is
// ItemID + LocationID. Quantity is never negative: any mutation that would
// drive it below zero is rejected before persistence.
type StockBalance struct {
	shared.TenantAggregateRoot
	// Uniqueness is per tenant and the embedded TenantID cannot join a
	// composite index tag, so idx_stock_balance_item_location is created
	// by the migrations as UNIQUE (tenant_id, item_id, location_id)
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Moving weighted average cost
}

// TableName returns the table name for GORM
func (StockBalance) TableName() string {
	return "stock_balances"
}

// NewStockBalance creates a zeroed balance for an item-location combination
func NewStockBalance(tenantID, itemID, locationID uuid.UUID) (*StockBalance, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}

	return &StockBalance{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ItemID:              itemID,
		LocationID:          locationID,
		Quantity:            decimal.Zero,
		UnitCost:            decimal.Zero,
	}, nil
}

// Increase adds quantity and folds the incoming cost into the moving weighted
// average: new cost = (old qty * old cost + qty * cost) / (old qty + qty).
func (b *StockBalance) Increase(quantity, unitCost decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	if b.Quantity.IsZero() {
		b.UnitCost = unitCost.Round(4)
	} else {
		totalValue := b.Quantity.Mul(b.UnitCost).Add(quantity.Mul(unitCost))
		b.UnitCost = totalValue.Div(b.Quantity.Add(quantity)).Round(4)
	}

	b.Quantity = b.Quantity.Add(quantity)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// Decrease removes quantity, rejecting any mutation that would leave the
// balance negative.
func (b *StockBalance) Decrease(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if b.Quantity.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	b.Quantity = b.Quantity.Sub(quantity)
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// AdjustTo sets the balance to the stated target and returns the signed delta
// that was applied. A zero delta leaves the balance (and version) untouched.
func (b *StockBalance) AdjustTo(target decimal.Decimal) (decimal.Decimal, error) {
	if target.IsNegative() {
		return decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Target quantity cannot be negative")
	}

	delta := target.Sub(b.Quantity)
	if delta.IsZero() {
		return decimal.Zero, nil
	}

	b.Quantity = target
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return delta, nil
}

// CanFulfill returns true if the balance covers the requested quantity
func (b *StockBalance) CanFulfill(quantity decimal.Decimal) bool {
	return b.Quantity.GreaterThanOrEqual(quantity)
}

// TotalValue returns quantity * unit cost
func (b *StockBalance) TotalValue() decimal.Decimal {
	return b.Quantity.Mul(b.UnitCost)
}
