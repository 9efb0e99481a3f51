package inventory

import (
	"time"

	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the type of a ledger movement
type MovementType string

const (
	// MovementTypeIn represents stock entering a location (purchase receiving, initial stock)
	MovementTypeIn MovementType = "IN"
	// MovementTypeOut represents stock leaving a location (work order consumption)
	MovementTypeOut MovementType = "OUT"
	// MovementTypeTransfer represents stock moved between two locations
	MovementTypeTransfer MovementType = "TRANSFER"
	// MovementTypeAdjust represents a correction to a stated target quantity
	MovementTypeAdjust MovementType = "ADJUST"
	// MovementTypeReturn represents material returned from a referencing document
	MovementTypeReturn MovementType = "RETURN"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeTransfer, MovementTypeAdjust, MovementTypeReturn:
		return true
	}
	return false
}

// ReasonCode classifies why a movement happened
type ReasonCode string

const (
	ReasonPurchaseReceived     ReasonCode = "PURCHASE_RECEIVED"
	ReasonWorkOrderConsumption ReasonCode = "WORK_ORDER_CONSUMPTION"
	ReasonWorkOrderReturn      ReasonCode = "WORK_ORDER_RETURN"
	ReasonLineDeleted          ReasonCode = "LINE_DELETED"
	ReasonStockCount           ReasonCode = "STOCK_COUNT"
	ReasonTransfer             ReasonCode = "TRANSFER"
	ReasonInitialStock         ReasonCode = "INITIAL_STOCK"
	ReasonManual               ReasonCode = "MANUAL"
)

// String returns the string representation of ReasonCode
func (r ReasonCode) String() string {
	return string(r)
}

// IsValid returns true if the reason code is known
func (r ReasonCode) IsValid() bool {
	switch r {
	case ReasonPurchaseReceived, ReasonWorkOrderConsumption, ReasonWorkOrderReturn,
		ReasonLineDeleted, ReasonStockCount, ReasonTransfer, ReasonInitialStock, ReasonManual:
		return true
	}
	return false
}

// ReferenceType identifies the kind of document a movement is linked to
type ReferenceType string

const (
	ReferenceTypeWorkOrder ReferenceType = "WORK_ORDER"
	ReferenceTypePurchase  ReferenceType = "PURCHASE"
	ReferenceTypeManual    ReferenceType = "MANUAL"
)

// String returns the string representation of ReferenceType
func (r ReferenceType) String() string {
	return string(r)
}

// IsValid returns true if the reference type is known
func (r ReferenceType) IsValid() bool {
	switch r {
	case ReferenceTypeWorkOrder, ReferenceTypePurchase, ReferenceTypeManual:
		return true
	}
	return false
}

// Movement is an immutable record of a single ledger event. Once written it is
// never modified; corrections are expressed as new offsetting movements.
//
// Location semantics follow the movement direction: ToLocationID is set on
// increments (IN, RETURN, positive ADJUST), FromLocationID on decrements
// (OUT, negative ADJUST), and both on TRANSFER. The balance-after snapshots
// mirror that: balance = initial + Σ signed quantities per location.
type Movement struct {
	shared.BaseEntity
	TenantID         uuid.UUID        `gorm:"type:uuid;not null;index:idx_movement_tenant_time,priority:1"`
	ItemID           uuid.UUID        `gorm:"type:uuid;not null;index:idx_movement_item"`
	Type             MovementType     `gorm:"type:varchar(20);not null;index:idx_movement_type"`
	FromLocationID   *uuid.UUID       `gorm:"type:uuid;index:idx_movement_from_location"`
	ToLocationID     *uuid.UUID       `gorm:"type:uuid;index:idx_movement_to_location"`
	Quantity         decimal.Decimal  `gorm:"type:decimal(18,4);not null"` // Always positive; direction from locations
	UnitCost         decimal.Decimal  `gorm:"type:decimal(18,4);not null"` // Valuation cost per unit (IN/RETURN)
	FromBalanceAfter *decimal.Decimal `gorm:"type:decimal(18,4)"`          // Source balance after the movement
	ToBalanceAfter   *decimal.Decimal `gorm:"type:decimal(18,4)"`          // Destination balance after the movement
	Reason           ReasonCode       `gorm:"type:varchar(30);not null;index:idx_movement_reason"`
	ReferenceType    ReferenceType    `gorm:"type:varchar(30)"`
	ReferenceID      string           `gorm:"type:varchar(50);index:idx_movement_reference"`
	Notes            string           `gorm:"type:varchar(255)"`
	ActorID          *uuid.UUID       `gorm:"type:uuid"`
	OccurredAt       time.Time        `gorm:"not null;index:idx_movement_tenant_time,priority:2"`
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "inventory_movements"
}

// NewMovement creates a new movement record with the shared invariants checked.
// Direction-specific validation is done by the ledger service before calling.
func NewMovement(
	tenantID, itemID uuid.UUID,
	movType MovementType,
	fromLocationID, toLocationID *uuid.UUID,
	quantity, unitCost decimal.Decimal,
	reason ReasonCode,
) (*Movement, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if !movType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
	}
	if fromLocationID == nil && toLocationID == nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Movement must reference at least one location")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Invalid reason code")
	}

	return &Movement{
		BaseEntity:     shared.NewBaseEntity(),
		TenantID:       tenantID,
		ItemID:         itemID,
		Type:           movType,
		FromLocationID: fromLocationID,
		ToLocationID:   toLocationID,
		Quantity:       quantity,
		UnitCost:       unitCost,
		Reason:         reason,
		OccurredAt:     time.Now(),
	}, nil
}

// WithReference sets the back-reference to the originating document
func (m *Movement) WithReference(refType ReferenceType, refID string) *Movement {
	m.ReferenceType = refType
	m.ReferenceID = refID
	return m
}

// WithNotes sets free-text notes
func (m *Movement) WithNotes(notes string) *Movement {
	m.Notes = notes
	return m
}

// WithActor sets the user who performed the operation
func (m *Movement) WithActor(actorID uuid.UUID) *Movement {
	m.ActorID = &actorID
	return m
}

// WithBalancesAfter records the post-movement balance snapshots
func (m *Movement) WithBalancesAfter(fromAfter, toAfter *decimal.Decimal) *Movement {
	m.FromBalanceAfter = fromAfter
	m.ToBalanceAfter = toAfter
	return m
}

// SignedQuantityFor returns the quantity delta this movement applied to the
// given location: positive for increments, negative for decrements, zero when
// the location is not involved.
func (m *Movement) SignedQuantityFor(locationID uuid.UUID) decimal.Decimal {
	signed := decimal.Zero
	if m.FromLocationID != nil && *m.FromLocationID == locationID {
		signed = signed.Sub(m.Quantity)
	}
	if m.ToLocationID != nil && *m.ToLocationID == locationID {
		signed = signed.Add(m.Quantity)
	}
	return signed
}

// TotalCost returns quantity * unit cost
func (m *Movement) TotalCost() decimal.Decimal {
	return m.Quantity.Mul(m.UnitCost)
}

// IsIncrementFor returns true if the movement increases stock at the location
func (m *Movement) IsIncrementFor(locationID uuid.UUID) bool {
	return m.ToLocationID != nil && *m.ToLocationID == locationID
}

// IsDecrementFor returns true if the movement decreases stock at the location
func (m *Movement) IsDecrementFor(locationID uuid.UUID) bool {
	return m.FromLocationID != nil && *m.FromLocationID == locationID
}
