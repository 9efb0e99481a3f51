package inventory

import (
	"time"

	"github.com/fieldserv/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockInRequest represents a manual stock-in operation
type StockInRequest struct {
	ItemID     uuid.UUID       `json:"item_id" binding:"required"`
	LocationID uuid.UUID       `json:"location_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Reason     string          `json:"reason"` // Defaults to MANUAL
	Notes      string          `json:"notes"`
	RequestKey string          `json:"request_key"` // Optional idempotency key
}

// StockOutRequest represents a manual stock-out operation
type StockOutRequest struct {
	ItemID     uuid.UUID       `json:"item_id" binding:"required"`
	LocationID uuid.UUID       `json:"location_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Reason     string          `json:"reason"`
	Notes      string          `json:"notes"`
	RequestKey string          `json:"request_key"`
}

// TransferRequest represents a stock transfer between two locations
type TransferRequest struct {
	ItemID         uuid.UUID       `json:"item_id" binding:"required"`
	FromLocationID uuid.UUID       `json:"from_location_id" binding:"required"`
	ToLocationID   uuid.UUID       `json:"to_location_id" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	Notes          string          `json:"notes"`
	RequestKey     string          `json:"request_key"`
}

// AdjustToTargetRequest represents a stock count adjustment to a stated target
type AdjustToTargetRequest struct {
	ItemID         uuid.UUID       `json:"item_id" binding:"required"`
	LocationID     uuid.UUID       `json:"location_id" binding:"required"`
	TargetQuantity decimal.Decimal `json:"target_quantity"`
	Reason         string          `json:"reason"` // Defaults to STOCK_COUNT
	Notes          string          `json:"notes"`
	RequestKey     string          `json:"request_key"`
}

// ReturnRequest represents material returned to stock from a document
type ReturnRequest struct {
	ItemID        uuid.UUID       `json:"item_id" binding:"required"`
	LocationID    uuid.UUID       `json:"location_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Reason        string          `json:"reason"` // Defaults to WORK_ORDER_RETURN
	ReferenceType string          `json:"reference_type" binding:"required"`
	ReferenceID   string          `json:"reference_id" binding:"required"`
	Notes         string          `json:"notes"`
	RequestKey    string          `json:"request_key"`
}

// MovementResponse represents a ledger movement in API responses
type MovementResponse struct {
	ID               uuid.UUID        `json:"id"`
	TenantID         uuid.UUID        `json:"tenant_id"`
	ItemID           uuid.UUID        `json:"item_id"`
	Type             string           `json:"type"`
	FromLocationID   *uuid.UUID       `json:"from_location_id,omitempty"`
	ToLocationID     *uuid.UUID       `json:"to_location_id,omitempty"`
	Quantity         decimal.Decimal  `json:"quantity"`
	UnitCost         decimal.Decimal  `json:"unit_cost"`
	TotalCost        decimal.Decimal  `json:"total_cost"`
	FromBalanceAfter *decimal.Decimal `json:"from_balance_after,omitempty"`
	ToBalanceAfter   *decimal.Decimal `json:"to_balance_after,omitempty"`
	Reason           string           `json:"reason"`
	ReferenceType    string           `json:"reference_type,omitempty"`
	ReferenceID      string           `json:"reference_id,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	OccurredAt       time.Time        `json:"occurred_at"`
}

// ToMovementResponse converts a movement to its response representation
func ToMovementResponse(m *inventory.Movement) MovementResponse {
	return MovementResponse{
		ID:               m.ID,
		TenantID:         m.TenantID,
		ItemID:           m.ItemID,
		Type:             m.Type.String(),
		FromLocationID:   m.FromLocationID,
		ToLocationID:     m.ToLocationID,
		Quantity:         m.Quantity,
		UnitCost:         m.UnitCost,
		TotalCost:        m.TotalCost(),
		FromBalanceAfter: m.FromBalanceAfter,
		ToBalanceAfter:   m.ToBalanceAfter,
		Reason:           m.Reason.String(),
		ReferenceType:    m.ReferenceType.String(),
		ReferenceID:      m.ReferenceID,
		Notes:            m.Notes,
		OccurredAt:       m.OccurredAt,
	}
}

// ToMovementResponses converts a slice of movements
func ToMovementResponses(movements []inventory.Movement) []MovementResponse {
	responses := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		responses = append(responses, ToMovementResponse(&movements[i]))
	}
	return responses
}

// BalanceResponse represents a stock balance in API responses
type BalanceResponse struct {
	ID         uuid.UUID       `json:"id"`
	ItemID     uuid.UUID       `json:"item_id"`
	LocationID uuid.UUID       `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	TotalValue decimal.Decimal `json:"total_value"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int             `json:"version"`
}

// ToBalanceResponse converts a stock balance to its response representation
func ToBalanceResponse(b *inventory.StockBalance) BalanceResponse {
	return BalanceResponse{
		ID:         b.ID,
		ItemID:     b.ItemID,
		LocationID: b.LocationID,
		Quantity:   b.Quantity,
		UnitCost:   b.UnitCost,
		TotalValue: b.TotalValue(),
		UpdatedAt:  b.UpdatedAt,
		Version:    b.Version,
	}
}

// ToBalanceResponses converts a slice of balances
func ToBalanceResponses(balances []inventory.StockBalance) []BalanceResponse {
	responses := make([]BalanceResponse, 0, len(balances))
	for i := range balances {
		responses = append(responses, ToBalanceResponse(&balances[i]))
	}
	return responses
}

// BalanceListFilter represents filter options for balance listing
type BalanceListFilter struct {
	ItemID     *uuid.UUID `form:"item_id"`
	LocationID *uuid.UUID `form:"location_id"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// MovementListFilter represents filter options for movement listing
type MovementListFilter struct {
	ItemID        *uuid.UUID `form:"item_id"`
	LocationID    *uuid.UUID `form:"location_id"`
	Type          string     `form:"type"`
	ReferenceType string     `form:"reference_type"`
	ReferenceID   string     `form:"reference_id"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
