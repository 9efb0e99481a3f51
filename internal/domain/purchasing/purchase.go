package purchasing

import (
	"strings"
	"time"

	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseStatus represents the lifecycle of a purchase order
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "PENDING"
	PurchaseStatusReceived  PurchaseStatus = "RECEIVED"
	PurchaseStatusCancelled PurchaseStatus = "CANCELLED"
)

// IsValid returns true if the status is known
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusReceived, PurchaseStatusCancelled:
		return true
	}
	return false
}

// PurchaseItem is one line of a purchase order. Estimated quantity/cost come
// from the order as placed; received quantity and real cost are written at
// receiving time and drive both the stock-in movements and the real totals.
type PurchaseItem struct {
	shared.BaseEntity
	PurchaseID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	CatalogItemID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name             string          `gorm:"type:varchar(200);not null"`
	OrderedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	EstimatedCost    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RealCost         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// EstimatedTotal returns ordered quantity * estimated cost
func (i *PurchaseItem) EstimatedTotal() decimal.Decimal {
	return i.OrderedQuantity.Mul(i.EstimatedCost)
}

// RealTotal returns received quantity * real cost
func (i *PurchaseItem) RealTotal() decimal.Decimal {
	return i.ReceivedQuantity.Mul(i.RealCost)
}

// Purchase represents a purchase order aggregate: a header plus its lines.
// Receiving converts a pending purchase into confirmed inventory and real
// financial totals computed from what actually arrived, not from the
// client-submitted estimates.
type Purchase struct {
	shared.TenantAggregateRoot
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID     uuid.UUID       `gorm:"type:uuid;not null;index"` // Destination for received stock
	Status         PurchaseStatus  `gorm:"type:varchar(20);not null;index"`
	Reference      string          `gorm:"type:varchar(100)"`
	Notes          string          `gorm:"type:varchar(255)"`
	EstimatedTotal decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RealTotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReceivedAt     *time.Time
	ReceivedBy     *uuid.UUID `gorm:"type:uuid"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID;references:ID"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new pending purchase order
func NewPurchase(tenantID, supplierID, locationID uuid.UUID, reference string) (*Purchase, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}

	return &Purchase{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SupplierID:          supplierID,
		LocationID:          locationID,
		Status:              PurchaseStatusPending,
		Reference:           strings.TrimSpace(reference),
		EstimatedTotal:      decimal.Zero,
		RealTotal:           decimal.Zero,
		Items:               make([]PurchaseItem, 0),
	}, nil
}

// AddItem adds a line to a pending purchase
func (p *Purchase) AddItem(catalogItemID uuid.UUID, name string, orderedQty, estimatedCost decimal.Decimal) (*PurchaseItem, error) {
	if p.Status != PurchaseStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Lines can only be added to a pending purchase")
	}
	if catalogItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Catalog item ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if orderedQty.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity must be positive")
	}
	if estimatedCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Estimated cost cannot be negative")
	}

	item := PurchaseItem{
		BaseEntity:       shared.NewBaseEntity(),
		PurchaseID:       p.ID,
		CatalogItemID:    catalogItemID,
		Name:             strings.TrimSpace(name),
		OrderedQuantity:  orderedQty,
		EstimatedCost:    estimatedCost,
		ReceivedQuantity: decimal.Zero,
		RealCost:         decimal.Zero,
	}
	p.Items = append(p.Items, item)
	p.EstimatedTotal = p.EstimatedTotal.Add(item.EstimatedTotal())
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return &p.Items[len(p.Items)-1], nil
}

// ReceivedLine carries the actually received quantity and cost for one line
type ReceivedLine struct {
	ItemID   uuid.UUID
	Quantity decimal.Decimal
	RealCost decimal.Decimal
}

// Receive marks the purchase received, writing the real quantities and costs
// onto its lines and recomputing the real total as Σ(qty * cost_real).
// Every referenced line must exist and quantities must be non-negative;
// the whole receive is rejected on the first invalid line.
func (p *Purchase) Receive(received []ReceivedLine, receivedBy uuid.UUID) error {
	if p.Status != PurchaseStatusPending {
		return shared.NewDomainError("PURCHASE_NOT_PENDING", "Only pending purchases can be received")
	}
	if len(received) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Receiving requires at least one line")
	}

	byID := make(map[uuid.UUID]*PurchaseItem, len(p.Items))
	for i := range p.Items {
		byID[p.Items[i].ID] = &p.Items[i]
	}

	for _, line := range received {
		item, ok := byID[line.ItemID]
		if !ok {
			return shared.NewDomainError("LINE_NOT_FOUND", "Received line does not belong to this purchase")
		}
		if line.Quantity.IsNegative() {
			return shared.NewDomainError("INVALID_QUANTITY", "Received quantity cannot be negative")
		}
		if line.RealCost.IsNegative() {
			return shared.NewDomainError("INVALID_COST", "Real cost cannot be negative")
		}

		item.ReceivedQuantity = line.Quantity
		item.RealCost = line.RealCost
		item.UpdatedAt = time.Now()
	}

	realTotal := decimal.Zero
	for i := range p.Items {
		realTotal = realTotal.Add(p.Items[i].RealTotal())
	}

	now := time.Now()
	p.RealTotal = realTotal
	p.Status = PurchaseStatusReceived
	p.ReceivedAt = &now
	if receivedBy != uuid.Nil {
		p.ReceivedBy = &receivedBy
	}
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// Cancel cancels a pending purchase
func (p *Purchase) Cancel() error {
	if p.Status != PurchaseStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending purchases can be cancelled")
	}
	p.Status = PurchaseStatusCancelled
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
