package inventory

import (
	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementContext carries the audit fields shared by all ledger operations
type MovementContext struct {
	Reason        ReasonCode
	ReferenceType ReferenceType
	ReferenceID   string
	Notes         string
	ActorID       uuid.UUID
}

// LedgerService applies ledger operations to loaded stock balances and builds
// the corresponding immutable movement records. Each method mutates the
// balance(s) in memory and returns the movement; the caller persists both in
// one transaction (balance via optimistic-lock save) so an operation either
// fully applies or leaves no trace.
type LedgerService struct{}

// NewLedgerService creates a new LedgerService
func NewLedgerService() *LedgerService {
	return &LedgerService{}
}

// ApplyIn increments the destination balance and records an IN movement
func (s *LedgerService) ApplyIn(
	balance *StockBalance,
	quantity, unitCost decimal.Decimal,
	mc MovementContext,
) (*Movement, error) {
	if balance == nil {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Stock balance cannot be nil")
	}

	if err := balance.Increase(quantity, unitCost); err != nil {
		return nil, err
	}

	loc := balance.LocationID
	movement, err := NewMovement(balance.TenantID, balance.ItemID, MovementTypeIn, nil, &loc, quantity, unitCost, mc.Reason)
	if err != nil {
		return nil, err
	}

	after := balance.Quantity
	return s.finish(movement, mc).WithBalancesAfter(nil, &after), nil
}

// ApplyOut decrements the source balance and records an OUT movement.
// Fails with ErrInsufficientStock when the balance cannot cover the quantity.
func (s *LedgerService) ApplyOut(
	balance *StockBalance,
	quantity decimal.Decimal,
	mc MovementContext,
) (*Movement, error) {
	if balance == nil {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Stock balance cannot be nil")
	}

	if err := balance.Decrease(quantity); err != nil {
		return nil, err
	}

	loc := balance.LocationID
	movement, err := NewMovement(balance.TenantID, balance.ItemID, MovementTypeOut, &loc, nil, quantity, balance.UnitCost, mc.Reason)
	if err != nil {
		return nil, err
	}

	after := balance.Quantity
	return s.finish(movement, mc).WithBalancesAfter(&after, nil), nil
}

// ApplyTransfer moves quantity between two balances of the same item as one
// movement. Both balance mutations happen in memory before anything is
// persisted, so an insufficient source leaves both untouched.
func (s *LedgerService) ApplyTransfer(
	from, to *StockBalance,
	quantity decimal.Decimal,
	mc MovementContext,
) (*Movement, error) {
	if from == nil || to == nil {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Both stock balances are required")
	}
	if from.ItemID != to.ItemID {
		return nil, shared.NewDomainError("ITEM_MISMATCH", "Transfer balances must reference the same item")
	}
	if from.LocationID == to.LocationID {
		return nil, shared.NewDomainError("SAME_LOCATION", "Source and destination locations must differ")
	}

	// Transfer carries the source's valuation cost to the destination
	cost := from.UnitCost

	if err := from.Decrease(quantity); err != nil {
		return nil, err
	}
	if err := to.Increase(quantity, cost); err != nil {
		return nil, err
	}

	fromLoc := from.LocationID
	toLoc := to.LocationID
	movement, err := NewMovement(from.TenantID, from.ItemID, MovementTypeTransfer, &fromLoc, &toLoc, quantity, cost, mc.Reason)
	if err != nil {
		return nil, err
	}

	fromAfter := from.Quantity
	toAfter := to.Quantity
	return s.finish(movement, mc).WithBalancesAfter(&fromAfter, &toAfter), nil
}

// ApplyAdjustToTarget sets the balance to the stated target quantity and
// records one ADJUST movement carrying the absolute delta. Returns nil when
// the target equals the current balance (no movement is written).
func (s *LedgerService) ApplyAdjustToTarget(
	balance *StockBalance,
	target decimal.Decimal,
	mc MovementContext,
) (*Movement, error) {
	if balance == nil {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Stock balance cannot be nil")
	}

	delta, err := balance.AdjustTo(target)
	if err != nil {
		return nil, err
	}
	if delta.IsZero() {
		return nil, nil
	}

	loc := balance.LocationID
	var fromLoc, toLoc *uuid.UUID
	if delta.IsPositive() {
		toLoc = &loc
	} else {
		fromLoc = &loc
	}

	movement, err := NewMovement(balance.TenantID, balance.ItemID, MovementTypeAdjust, fromLoc, toLoc, delta.Abs(), balance.UnitCost, mc.Reason)
	if err != nil {
		return nil, err
	}

	after := balance.Quantity
	if delta.IsPositive() {
		return s.finish(movement, mc).WithBalancesAfter(nil, &after), nil
	}
	return s.finish(movement, mc).WithBalancesAfter(&after, nil), nil
}

// ApplyReturn increments the balance with a return-specific reason code and a
// back-reference to the originating document.
func (s *LedgerService) ApplyReturn(
	balance *StockBalance,
	quantity decimal.Decimal,
	mc MovementContext,
) (*Movement, error) {
	if balance == nil {
		return nil, shared.NewDomainError("INVALID_BALANCE", "Stock balance cannot be nil")
	}
	if mc.ReferenceID == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Return requires a reference to the originating document")
	}

	// Returned material re-enters at the current valuation cost
	if err := balance.Increase(quantity, balance.UnitCost); err != nil {
		return nil, err
	}

	loc := balance.LocationID
	movement, err := NewMovement(balance.TenantID, balance.ItemID, MovementTypeReturn, nil, &loc, quantity, balance.UnitCost, mc.Reason)
	if err != nil {
		return nil, err
	}

	after := balance.Quantity
	return s.finish(movement, mc).WithBalancesAfter(nil, &after), nil
}

func (s *LedgerService) finish(m *Movement, mc MovementContext) *Movement {
	if mc.ReferenceType != "" || mc.ReferenceID != "" {
		m.WithReference(mc.ReferenceType, mc.ReferenceID)
	}
	if mc.Notes != "" {
		m.WithNotes(mc.Notes)
	}
	if mc.ActorID != uuid.Nil {
		m.WithActor(mc.ActorID)
	}
	return m
}
