package workorder

import (
	"time"

	"github.com/fieldserv/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateWorkOrderRequest represents the payload to create an order or quote
type CreateWorkOrderRequest struct {
	DocumentType string          `json:"document_type" binding:"required,oneof=ORDER QUOTE"`
	ClientID     uuid.UUID       `json:"client_id" binding:"required"`
	AssetID      *uuid.UUID      `json:"asset_id"`
	Title        string          `json:"title" binding:"required,max=200"`
	Description  string          `json:"description"`
	Priority     string          `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	TechnicianID *uuid.UUID      `json:"technician_id"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
}

// UpdateWorkOrderRequest represents editable header fields
type UpdateWorkOrderRequest struct {
	Title       string `json:"title" binding:"omitempty,max=200"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
}

// TransitionRequest represents a status transition
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// CancelRequest represents a cancellation with its reason
type CancelRequest struct {
	Reason string `json:"reason" binding:"required,max=255"`
}

// AssignTechnicianRequest assigns a technician to the order
type AssignTechnicianRequest struct {
	TechnicianID uuid.UUID `json:"technician_id" binding:"required"`
}

// AddLineRequest represents the payload to add a line to a work order
type AddLineRequest struct {
	Kind          string          `json:"kind" binding:"required,oneof=SERVICE MATERIAL"`
	Name          string          `json:"name" binding:"required,max=200"`
	CatalogItemID *uuid.UUID      `json:"catalog_item_id"`
	LocationID    *uuid.UUID      `json:"location_id"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
}

// UpdateLineRequest updates a line's display quantities and pricing.
// It never touches inventory; the original movement stays as written.
type UpdateLineRequest struct {
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// ReturnLineRequest returns part or all of a material line to stock
type ReturnLineRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Notes    string          `json:"notes"`
}

// RegisterPaymentRequest represents a payment against a work order
type RegisterPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Method        string          `json:"method" binding:"required,oneof=CASH CARD TRANSFER OTHER"`
	Reference     string          `json:"reference" binding:"omitempty,max=100"`
	Notes         string          `json:"notes" binding:"omitempty,max=255"`
	BankAccountID *uuid.UUID      `json:"bank_account_id"`
	PaidAt        *time.Time      `json:"paid_at"`
}

// WorkOrderResponse represents a work order in API responses
type WorkOrderResponse struct {
	ID             uuid.UUID       `json:"id"`
	DocumentType   string          `json:"document_type"`
	DocumentNumber string          `json:"document_number"`
	ClientID       uuid.UUID       `json:"client_id"`
	AssetID        *uuid.UUID      `json:"asset_id,omitempty"`
	Status         string          `json:"status"`
	Priority       string          `json:"priority"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	TechnicianID   *uuid.UUID      `json:"technician_id,omitempty"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	Total          decimal.Decimal `json:"total"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	PaymentStatus  string          `json:"payment_status"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	CancelledAt    *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason   string          `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// ToWorkOrderResponse converts a work order to its response representation
func ToWorkOrderResponse(w *workorder.WorkOrder) WorkOrderResponse {
	return WorkOrderResponse{
		ID:             w.ID,
		DocumentType:   string(w.DocumentType),
		DocumentNumber: w.DocumentNumber,
		ClientID:       w.ClientID,
		AssetID:        w.AssetID,
		Status:         w.Status.String(),
		Priority:       string(w.Priority),
		Title:          w.Title,
		Description:    w.Description,
		TechnicianID:   w.TechnicianID,
		TaxRate:        w.TaxRate,
		Subtotal:       w.Subtotal,
		TaxAmount:      w.TaxAmount,
		Total:          w.Total,
		AmountPaid:     w.AmountPaid,
		PaymentStatus:  string(w.PaymentStatus),
		CompletedAt:    w.CompletedAt,
		CancelledAt:    w.CancelledAt,
		CancelReason:   w.CancelReason,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
		Version:        w.Version,
	}
}

// ToWorkOrderResponses converts a slice of work orders
func ToWorkOrderResponses(orders []workorder.WorkOrder) []WorkOrderResponse {
	responses := make([]WorkOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToWorkOrderResponse(&orders[i]))
	}
	return responses
}

// LineResponse represents a work order line in API responses
type LineResponse struct {
	ID               uuid.UUID       `json:"id"`
	WorkOrderID      uuid.UUID       `json:"work_order_id"`
	Kind             string          `json:"kind"`
	Name             string          `json:"name"`
	CatalogItemID    *uuid.UUID      `json:"catalog_item_id,omitempty"`
	LocationID       *uuid.UUID      `json:"location_id,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	Unit             string          `json:"unit"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	LineTotal        decimal.Decimal `json:"line_total"`
	CostTotal        decimal.Decimal `json:"cost_total"`
	MovementID       *uuid.UUID      `json:"movement_id,omitempty"`
	ReturnedQuantity decimal.Decimal `json:"returned_quantity"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ToLineResponse converts a line to its response representation
func ToLineResponse(l *workorder.WorkOrderLine) LineResponse {
	return LineResponse{
		ID:               l.ID,
		WorkOrderID:      l.WorkOrderID,
		Kind:             string(l.Kind),
		Name:             l.Name,
		CatalogItemID:    l.CatalogItemID,
		LocationID:       l.LocationID,
		Quantity:         l.Quantity,
		Unit:             l.Unit,
		UnitPrice:        l.UnitPrice,
		UnitCost:         l.UnitCost,
		LineTotal:        l.LineTotal,
		CostTotal:        l.CostTotal,
		MovementID:       l.MovementID,
		ReturnedQuantity: l.ReturnedQuantity,
		CreatedAt:        l.CreatedAt,
	}
}

// ToLineResponses converts a slice of lines
func ToLineResponses(lines []workorder.WorkOrderLine) []LineResponse {
	responses := make([]LineResponse, 0, len(lines))
	for i := range lines {
		responses = append(responses, ToLineResponse(&lines[i]))
	}
	return responses
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	WorkOrderID   uuid.UUID       `json:"work_order_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Reference     string          `json:"reference,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	BankAccountID *uuid.UUID      `json:"bank_account_id,omitempty"`
	PaidAt        time.Time       `json:"paid_at"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToPaymentResponse converts a payment to its response representation
func ToPaymentResponse(p *workorder.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		WorkOrderID:   p.WorkOrderID,
		Amount:        p.Amount,
		Method:        string(p.Method),
		Reference:     p.Reference,
		Notes:         p.Notes,
		BankAccountID: p.BankAccountID,
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of payments
func ToPaymentResponses(payments []workorder.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		responses = append(responses, ToPaymentResponse(&payments[i]))
	}
	return responses
}

// RegisterPaymentResponse returns the payment plus the reconciled order state
type RegisterPaymentResponse struct {
	Payment PaymentResponse   `json:"payment"`
	Order   WorkOrderResponse `json:"order"`
}

// WorkOrderListFilter represents filter options for work order listing
type WorkOrderListFilter struct {
	DocumentType string     `form:"document_type" binding:"omitempty,oneof=ORDER QUOTE"`
	Status       string     `form:"status"`
	ClientID     *uuid.UUID `form:"client_id"`
	TechnicianID *uuid.UUID `form:"technician_id"`
	Search       string     `form:"search"`
	Page         int        `form:"page"`
	PageSize     int        `form:"page_size"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
