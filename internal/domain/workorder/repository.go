package workorder

import (
	"context"

	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkOrderRepository defines the interface for work order persistence
type WorkOrderRepository interface {
	// FindByID finds a work order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*WorkOrder, error)

	// FindByIDForTenant finds a work order by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*WorkOrder, error)

	// FindByDocumentNumber finds a work order by its document number
	FindByDocumentNumber(ctx context.Context, tenantID uuid.UUID, documentNumber string) (*WorkOrder, error)

	// FindAllForTenant finds work orders for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]WorkOrder, error)

	// CountForTenant counts work orders matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a work order
	Save(ctx context.Context, order *WorkOrder) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, order *WorkOrder) error

	// NextDocumentSequence returns the next value of the continuous per-tenant,
	// per-type document counter. Must be called inside the same transaction
	// that persists the new order so concurrent creations cannot collide.
	NextDocumentSequence(ctx context.Context, tenantID uuid.UUID, docType DocumentType) (int, error)
}

// WorkOrderLineRepository defines the interface for work order line persistence
type WorkOrderLineRepository interface {
	// FindByID finds a line by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*WorkOrderLine, error)

	// FindByWorkOrder finds all lines on a work order
	FindByWorkOrder(ctx context.Context, tenantID, workOrderID uuid.UUID) ([]WorkOrderLine, error)

	// Save creates or updates a line
	Save(ctx context.Context, line *WorkOrderLine) error

	// Delete removes a line
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository defines the append-only interface for payment persistence
type PaymentRepository interface {
	// Create appends a payment
	Create(ctx context.Context, payment *Payment) error

	// FindByID finds a payment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByWorkOrder finds all payments against a work order
	FindByWorkOrder(ctx context.Context, tenantID, workOrderID uuid.UUID) ([]Payment, error)

	// SumByWorkOrder sums payment amounts for a work order
	SumByWorkOrder(ctx context.Context, tenantID, workOrderID uuid.UUID) (decimal.Decimal, error)
}
