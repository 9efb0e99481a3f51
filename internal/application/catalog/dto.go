package catalog

import (
	"time"

	"github.com/fieldserv/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents the payload to create a catalog item
type CreateItemRequest struct {
	Kind      string          `json:"kind" binding:"required,oneof=PRODUCT SERVICE"`
	Name      string          `json:"name" binding:"required,max=200"`
	Unit      string          `json:"unit" binding:"required,max=20"`
	BaseCost  decimal.Decimal `json:"base_cost"`
	SalePrice decimal.Decimal `json:"sale_price"`
	MinStock  decimal.Decimal `json:"min_stock"`
}

// UpdateItemRequest represents editable catalog item fields
type UpdateItemRequest struct {
	Name      string           `json:"name" binding:"omitempty,max=200"`
	Unit      string           `json:"unit" binding:"omitempty,max=20"`
	BaseCost  *decimal.Decimal `json:"base_cost"`
	SalePrice *decimal.Decimal `json:"sale_price"`
	MinStock  *decimal.Decimal `json:"min_stock"`
}

// ItemResponse represents a catalog item in API responses
type ItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	BaseCost  decimal.Decimal `json:"base_cost"`
	SalePrice decimal.Decimal `json:"sale_price"`
	MinStock  decimal.Decimal `json:"min_stock"`
	Stockable bool            `json:"stockable"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToItemResponse converts a catalog item to its response representation
func ToItemResponse(i *catalog.CatalogItem) ItemResponse {
	return ItemResponse{
		ID:        i.ID,
		Kind:      i.Kind.String(),
		Name:      i.Name,
		Unit:      i.Unit,
		BaseCost:  i.BaseCost,
		SalePrice: i.SalePrice,
		MinStock:  i.MinStock,
		Stockable: i.IsStockable(),
		Active:    i.Active,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// ToItemResponses converts a slice of catalog items
func ToItemResponses(items []catalog.CatalogItem) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToItemResponse(&items[i]))
	}
	return responses
}

// LowStockItem pairs an item with its current total stock across locations
type LowStockItem struct {
	Item     ItemResponse    `json:"item"`
	OnHand   decimal.Decimal `json:"on_hand"`
	MinStock decimal.Decimal `json:"min_stock"`
}

// CreateLocationRequest represents the payload to create a location
type CreateLocationRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Type string `json:"type" binding:"required,oneof=WAREHOUSE VEHICLE EXTERNAL"`
}

// UpdateLocationRequest represents editable location fields
type UpdateLocationRequest struct {
	Name string `json:"name" binding:"omitempty,max=100"`
}

// LocationResponse represents a location in API responses
type LocationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToLocationResponse converts a location to its response representation
func ToLocationResponse(l *catalog.Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Type:      string(l.Type),
		Active:    l.Active,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// ToLocationResponses converts a slice of locations
func ToLocationResponses(locations []catalog.Location) []LocationResponse {
	responses := make([]LocationResponse, 0, len(locations))
	for i := range locations {
		responses = append(responses, ToLocationResponse(&locations[i]))
	}
	return responses
}

// ItemListFilter represents filter options for item listing
type ItemListFilter struct {
	Kind     string `form:"kind" binding:"omitempty,oneof=PRODUCT SERVICE"`
	Active   *bool  `form:"active"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LocationListFilter represents filter options for location listing
type LocationListFilter struct {
	Type     string `form:"type" binding:"omitempty,oneof=WAREHOUSE VEHICLE EXTERNAL"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
