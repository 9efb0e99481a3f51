package workorder

import (
	"strings"
	"time"

	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineKind distinguishes labor/service lines from material lines
type LineKind string

const (
	LineKindService  LineKind = "SERVICE"
	LineKindMaterial LineKind = "MATERIAL"
)

// IsValid returns true if the line kind is known
func (k LineKind) IsValid() bool {
	return k == LineKindService || k == LineKindMaterial
}

// WorkOrderLine represents one billable line on a work order. A MATERIAL line
// backed by a stockable catalog item carries exactly one outbound movement
// reference once persisted; returns are recorded as new offsetting movements
// and accumulated in ReturnedQuantity.
type WorkOrderLine struct {
	shared.BaseEntity
	TenantID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	WorkOrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind             LineKind        `gorm:"type:varchar(10);not null"`
	Name             string          `gorm:"type:varchar(200);not null"`
	CatalogItemID    *uuid.UUID      `gorm:"type:uuid;index"`
	LocationID       *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit             string          `gorm:"type:varchar(20);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal        decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * UnitPrice
	CostTotal        decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * UnitCost
	MovementID       *uuid.UUID      `gorm:"type:uuid;index"`             // Outbound movement for stock-backed lines
	ReturnedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (WorkOrderLine) TableName() string {
	return "work_order_lines"
}

// NewWorkOrderLine creates a new line with computed totals
func NewWorkOrderLine(
	tenantID, workOrderID uuid.UUID,
	kind LineKind,
	name string,
	quantity decimal.Decimal,
	unit string,
	unitPrice, unitCost decimal.Decimal,
) (*WorkOrderLine, error) {
	if workOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WORK_ORDER", "Work order ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Line kind must be SERVICE or MATERIAL")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Line name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	return &WorkOrderLine{
		BaseEntity:       shared.NewBaseEntity(),
		TenantID:         tenantID,
		WorkOrderID:      workOrderID,
		Kind:             kind,
		Name:             strings.TrimSpace(name),
		Quantity:         quantity,
		Unit:             unit,
		UnitPrice:        unitPrice,
		UnitCost:         unitCost,
		LineTotal:        quantity.Mul(unitPrice).Round(2),
		CostTotal:        quantity.Mul(unitCost).Round(2),
		ReturnedQuantity: decimal.Zero,
	}, nil
}

// LinkCatalogItem attaches the catalog reference and stock location
func (l *WorkOrderLine) LinkCatalogItem(itemID uuid.UUID, locationID *uuid.UUID) {
	l.CatalogItemID = &itemID
	l.LocationID = locationID
	l.UpdatedAt = time.Now()
}

// LinkMovement stores the outbound movement reference for later reversal
func (l *WorkOrderLine) LinkMovement(movementID uuid.UUID) error {
	if l.MovementID != nil {
		return shared.NewDomainError("MOVEMENT_ALREADY_LINKED", "Line already carries a movement reference")
	}
	l.MovementID = &movementID
	l.UpdatedAt = time.Now()
	return nil
}

// HasMovement returns true if the line is backed by a ledger movement
func (l *WorkOrderLine) HasMovement() bool {
	return l.MovementID != nil
}

// UpdatePricing updates the line's pricing fields and recomputes the totals.
// Once the line is backed by a ledger movement its quantity is frozen: the
// compensating return on delete and the return cap are both derived from it,
// so changing it after consumption would let stock be minted. Prices stay
// editable.
func (l *WorkOrderLine) UpdatePricing(quantity, unitPrice, unitCost decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if l.HasMovement() && !quantity.Equal(l.Quantity) {
		return shared.NewDomainError("QUANTITY_LOCKED", "Quantity cannot change once the line consumed stock")
	}

	l.Quantity = quantity
	l.UnitPrice = unitPrice
	l.UnitCost = unitCost
	l.LineTotal = quantity.Mul(unitPrice).Round(2)
	l.CostTotal = quantity.Mul(unitCost).Round(2)
	l.UpdatedAt = time.Now()

	return nil
}

// ReturnableQuantity returns how much material may still be returned
func (l *WorkOrderLine) ReturnableQuantity() decimal.Decimal {
	remaining := l.Quantity.Sub(l.ReturnedQuantity)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// RecordReturn accumulates a returned quantity, capped at the line quantity
func (l *WorkOrderLine) RecordReturn(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
	}
	if l.CatalogItemID == nil {
		return shared.NewDomainError("NOT_STOCK_BACKED", "Line has no catalog item to return")
	}
	if quantity.GreaterThan(l.ReturnableQuantity()) {
		return shared.NewDomainError("RETURN_EXCEEDS_LINE", "Return quantity exceeds the remaining line quantity")
	}

	l.ReturnedQuantity = l.ReturnedQuantity.Add(quantity)
	l.UpdatedAt = time.Now()

	return nil
}
