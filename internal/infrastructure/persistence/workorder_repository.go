package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/fieldserv/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormWorkOrderRepository implements workorder.WorkOrderRepository using GORM
type GormWorkOrderRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderRepository creates a new GORM work order repository
func NewGormWorkOrderRepository(db *gorm.DB) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{db: db}
}

// FindByID finds a work order by its ID
func (r *GormWorkOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*workorder.WorkOrder, error) {
	var order workorder.WorkOrder
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForTenant finds a work order by ID within a tenant
func (r *GormWorkOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workorder.WorkOrder, error) {
	var order workorder.WorkOrder
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// FindByDocumentNumber finds a work order by its document number
func (r *GormWorkOrderRepository) FindByDocumentNumber(ctx context.Context, tenantID uuid.UUID, documentNumber string) (*workorder.WorkOrder, error) {
	var order workorder.WorkOrder
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND document_number = ?", tenantID, documentNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// FindAllForTenant finds work orders for a tenant
func (r *GormWorkOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]workorder.WorkOrder, error) {
	var orders []workorder.WorkOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&workorder.WorkOrder{}).
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountForTenant counts work orders matching the filter
func (r *GormWorkOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&workorder.WorkOrder{}).
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a work order
func (r *GormWorkOrderRepository) Save(ctx context.Context, order *workorder.WorkOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// SaveWithLock saves with optimistic locking by checking the version
func (r *GormWorkOrderRepository) SaveWithLock(ctx context.Context, order *workorder.WorkOrder) error {
	result := r.db.WithContext(ctx).Model(&workorder.WorkOrder{}).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]interface{}{
			"status":         order.Status,
			"priority":       order.Priority,
			"title":          order.Title,
			"description":    order.Description,
			"asset_id":       order.AssetID,
			"technician_id":  order.TechnicianID,
			"tax_rate":       order.TaxRate,
			"subtotal":       order.Subtotal,
			"tax_amount":     order.TaxAmount,
			"total":          order.Total,
			"amount_paid":    order.AmountPaid,
			"payment_status": order.PaymentStatus,
			"completed_at":   order.CompletedAt,
			"cancelled_at":   order.CancelledAt,
			"cancel_reason":  order.CancelReason,
			"version":        order.Version,
			"updated_at":     order.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Work order was modified by another transaction")
	}
	return nil
}

// DocumentCounter is the per-tenant, per-type numbering row behind
// NextDocumentSequence. Incrementing it takes a row lock for the rest of the
// transaction, so concurrent creations serialize on it and never hand out the
// same sequence twice.
type DocumentCounter struct {
	TenantID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentType string    `gorm:"type:varchar(10);primaryKey"`
	Sequence     int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DocumentCounter) TableName() string {
	return "document_counters"
}

// NextDocumentSequence allocates the next per-tenant, per-type counter value.
// The atomic UPDATE increments the counter row under the caller's transaction;
// when no row exists yet, the insert is retried as an increment if another
// transaction created the row first.
func (r *GormWorkOrderRepository) NextDocumentSequence(ctx context.Context, tenantID uuid.UUID, docType workorder.DocumentType) (int, error) {
	db := r.db.WithContext(ctx)

	increment := func() (int64, error) {
		result := db.Model(&DocumentCounter{}).
			Where("tenant_id = ? AND document_type = ?", tenantID, docType).
			Update("sequence", gorm.Expr("sequence + 1"))
		return result.RowsAffected, result.Error
	}

	rows, err := increment()
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		counter := DocumentCounter{TenantID: tenantID, DocumentType: string(docType), Sequence: 1}
		switch err := db.Create(&counter).Error; {
		case err == nil:
			return 1, nil
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// Lost the insert race, increment the winner's row instead
			if _, err := increment(); err != nil {
				return 0, err
			}
		default:
			return 0, err
		}
	}

	var counter DocumentCounter
	if err := db.Where("tenant_id = ? AND document_type = ?", tenantID, docType).
		First(&counter).Error; err != nil {
		return 0, err
	}
	return counter.Sequence, nil
}

// applyFilter applies filter options to the query
func (r *GormWorkOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormWorkOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "document_type":
			query = query.Where("document_type = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "priority":
			query = query.Where("priority = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "technician_id":
			query = query.Where("technician_id = ?", value)
		case "created_after":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "created_before":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	// Search in document number and title
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("document_number ILIKE ? OR title ILIKE ?", searchPattern, searchPattern)
	}

	return query
}

// GormWorkOrderLineRepository implements workorder.WorkOrderLineRepository using GORM
type GormWorkOrderLineRepository struct {
	db *gorm.DB
}

// NewGormWorkOrderLineRepository creates a new GORM work order line repository
func NewGormWorkOrderLineRepository(db *gorm.DB) *GormWorkOrderLineRepository {
	return &GormWorkOrderLineRepository{db: db}
}

// FindByID finds a line by its ID
func (r *GormWorkOrderLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*workorder.WorkOrderLine, error) {
	var line workorder.WorkOrderLine
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

// FindByWorkOrder finds all lines on a work order, oldest first
func (r *GormWorkOrderLineRepository) FindByWorkOrder(ctx context.Context, tenantID, workOrderID uuid.UUID) ([]workorder.WorkOrderLine, error) {
	var lines []workorder.WorkOrderLine
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND work_order_id = ?", tenantID, workOrderID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// Save creates or updates a line
func (r *GormWorkOrderLineRepository) Save(ctx context.Context, line *workorder.WorkOrderLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

// Delete removes a line
func (r *GormWorkOrderLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&workorder.WorkOrderLine{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormPaymentRepository implements workorder.PaymentRepository using GORM.
// Payments are append-only.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GORM payment repository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create appends a payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *workorder.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*workorder.Payment, error) {
	var payment workorder.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// FindByWorkOrder finds all payments against a work order, oldest first
func (r *GormPaymentRepository) FindByWorkOrder(ctx context.Context, tenantID, workOrderID uuid.UUID) ([]workorder.Payment, error) {
	var payments []workorder.Payment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND work_order_id = ?", tenantID, workOrderID).
		Order("paid_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// SumByWorkOrder sums payment amounts for a work order
func (r *GormPaymentRepository) SumByWorkOrder(ctx context.Context, tenantID, workOrderID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&workorder.Payment{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND work_order_id = ?", tenantID, workOrderID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}
