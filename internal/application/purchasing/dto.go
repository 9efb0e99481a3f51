package purchasing

import (
	"time"

	"github.com/fieldserv/backend/internal/domain/purchasing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest represents the payload to create a purchase order
type CreatePurchaseRequest struct {
	SupplierID uuid.UUID                   `json:"supplier_id" binding:"required"`
	LocationID uuid.UUID                   `json:"location_id" binding:"required"`
	Reference  string                      `json:"reference" binding:"omitempty,max=100"`
	Notes      string                      `json:"notes" binding:"omitempty,max=255"`
	Items      []CreatePurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreatePurchaseItemRequest represents one ordered line
type CreatePurchaseItemRequest struct {
	CatalogItemID uuid.UUID       `json:"catalog_item_id" binding:"required"`
	Name          string          `json:"name" binding:"required,max=200"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
}

// ReceivePurchaseRequest carries what actually arrived, per line
type ReceivePurchaseRequest struct {
	Items []ReceiveItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReceiveItemRequest represents the received quantity and cost for one line
type ReceiveItemRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	RealCost decimal.Decimal `json:"real_cost"`
}

// PurchaseItemResponse represents a purchase line in API responses
type PurchaseItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	CatalogItemID    uuid.UUID       `json:"catalog_item_id"`
	Name             string          `json:"name"`
	OrderedQuantity  decimal.Decimal `json:"ordered_quantity"`
	EstimatedCost    decimal.Decimal `json:"estimated_cost"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	RealCost         decimal.Decimal `json:"real_cost"`
}

// PurchaseResponse represents a purchase order in API responses
type PurchaseResponse struct {
	ID             uuid.UUID              `json:"id"`
	SupplierID     uuid.UUID              `json:"supplier_id"`
	LocationID     uuid.UUID              `json:"location_id"`
	Status         string                 `json:"status"`
	Reference      string                 `json:"reference,omitempty"`
	Notes          string                 `json:"notes,omitempty"`
	EstimatedTotal decimal.Decimal        `json:"estimated_total"`
	RealTotal      decimal.Decimal        `json:"real_total"`
	ReceivedAt     *time.Time             `json:"received_at,omitempty"`
	ReceivedBy     *uuid.UUID             `json:"received_by,omitempty"`
	Items          []PurchaseItemResponse `json:"items"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	Version        int                    `json:"version"`
}

// ToPurchaseResponse converts a purchase to its response representation
func ToPurchaseResponse(p *purchasing.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, 0, len(p.Items))
	for i := range p.Items {
		item := &p.Items[i]
		items = append(items, PurchaseItemResponse{
			ID:               item.ID,
			CatalogItemID:    item.CatalogItemID,
			Name:             item.Name,
			OrderedQuantity:  item.OrderedQuantity,
			EstimatedCost:    item.EstimatedCost,
			ReceivedQuantity: item.ReceivedQuantity,
			RealCost:         item.RealCost,
		})
	}

	return PurchaseResponse{
		ID:             p.ID,
		SupplierID:     p.SupplierID,
		LocationID:     p.LocationID,
		Status:         string(p.Status),
		Reference:      p.Reference,
		Notes:          p.Notes,
		EstimatedTotal: p.EstimatedTotal,
		RealTotal:      p.RealTotal,
		ReceivedAt:     p.ReceivedAt,
		ReceivedBy:     p.ReceivedBy,
		Items:          items,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Version:        p.Version,
	}
}

// ToPurchaseResponses converts a slice of purchases
func ToPurchaseResponses(purchases []purchasing.Purchase) []PurchaseResponse {
	responses := make([]PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		responses = append(responses, ToPurchaseResponse(&purchases[i]))
	}
	return responses
}

// PurchaseListFilter represents filter options for purchase listing
type PurchaseListFilter struct {
	Status     string     `form:"status" binding:"omitempty,oneof=PENDING RECEIVED CANCELLED"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
