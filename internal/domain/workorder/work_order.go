package workorder

import (
	"fmt"
	"strings"
	"time"

	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentEpsilon is the rounding tolerance applied when comparing paid amounts
// against order totals.
var PaymentEpsilon = decimal.NewFromFloat(0.01)

// DocumentType distinguishes confirmed orders from quotes
type DocumentType string

const (
	DocumentTypeOrder DocumentType = "ORDER"
	DocumentTypeQuote DocumentType = "QUOTE"
)

// IsValid returns true if the document type is known
func (d DocumentType) IsValid() bool {
	return d == DocumentTypeOrder || d == DocumentTypeQuote
}

// Prefix returns the human-readable document number prefix
func (d DocumentType) Prefix() string {
	if d == DocumentTypeQuote {
		return "COT"
	}
	return "OS"
}

// FormatDocumentNumber renders a document number as {OS|COT}{MM}{YY}-{NNNN}.
// The embedded month/year encode creation time only; the sequence is a
// continuous per-tenant, per-type counter that never resets.
func FormatDocumentNumber(docType DocumentType, at time.Time, sequence int) string {
	return fmt.Sprintf("%s%02d%02d-%04d", docType.Prefix(), int(at.Month()), at.Year()%100, sequence)
}

// Status represents the lifecycle state of a work order
type Status string

const (
	StatusQuote      Status = "QUOTE"
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid returns true if the status is known
func (s Status) IsValid() bool {
	switch s {
	case StatusQuote, StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusQuote:
		return target == StatusPending || target == StatusCancelled
	case StatusPending:
		return target == StatusInProgress || target == StatusCancelled
	case StatusInProgress:
		return target == StatusCompleted || target == StatusCancelled
	case StatusCompleted, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// Priority represents urgency of a work order
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// IsValid returns true if the priority is known
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// PaymentStatus is derived from amount paid vs. total
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// WorkOrder represents a billable service record for a client's asset.
// A quote is the same entity in an unconfirmed state prior to conversion.
type WorkOrder struct {
	shared.TenantAggregateRoot
	DocumentType   DocumentType    `gorm:"type:varchar(10);not null;index"`
	// Unique per tenant via idx_work_order_tenant_number in the migrations
	DocumentNumber string          `gorm:"type:varchar(20);not null;index"`
	Sequence       int             `gorm:"not null"` // Continuous per tenant+type counter
	ClientID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	AssetID        *uuid.UUID      `gorm:"type:uuid;index"`
	Status         Status          `gorm:"type:varchar(20);not null;index"`
	Priority       Priority        `gorm:"type:varchar(10);not null;default:'MEDIUM'"`
	Title          string          `gorm:"type:varchar(200);not null"`
	Description    string          `gorm:"type:text"`
	TechnicianID   *uuid.UUID      `gorm:"type:uuid;index"`
	TaxRate        decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"` // e.g. 0.21 for 21%
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AmountPaid     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentStatus  PaymentStatus   `gorm:"type:varchar(10);not null;default:'UNPAID'"`
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (WorkOrder) TableName() string {
	return "work_orders"
}

// NewWorkOrder creates a new work order or quote. The document number and
// sequence come from the repository's per-tenant counter.
func NewWorkOrder(
	tenantID uuid.UUID,
	docType DocumentType,
	documentNumber string,
	sequence int,
	clientID uuid.UUID,
	title string,
) (*WorkOrder, error) {
	if !docType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Document type must be ORDER or QUOTE")
	}
	if documentNumber == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NUMBER", "Document number cannot be empty")
	}
	if sequence <= 0 {
		return nil, shared.NewDomainError("INVALID_SEQUENCE", "Document sequence must be positive")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}

	status := StatusPending
	if docType == DocumentTypeQuote {
		status = StatusQuote
	}

	return &WorkOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		DocumentType:        docType,
		DocumentNumber:      documentNumber,
		Sequence:            sequence,
		ClientID:            clientID,
		Status:              status,
		Priority:            PriorityMedium,
		Title:               strings.TrimSpace(title),
		TaxRate:             decimal.Zero,
		Subtotal:            decimal.Zero,
		TaxAmount:           decimal.Zero,
		Total:               decimal.Zero,
		AmountPaid:          decimal.Zero,
		PaymentStatus:       PaymentStatusUnpaid,
	}, nil
}

// IsEditable returns true while lines may still be added or changed
func (w *WorkOrder) IsEditable() bool {
	switch w.Status {
	case StatusQuote, StatusPending, StatusInProgress:
		return true
	}
	return false
}

// TransitionTo moves the order to a new lifecycle state
func (w *WorkOrder) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown work order status")
	}
	if !w.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition work order from %s to %s", w.Status, target))
	}

	now := time.Now()
	w.Status = target
	switch target {
	case StatusCompleted:
		w.CompletedAt = &now
	case StatusCancelled:
		w.CancelledAt = &now
	}
	w.UpdatedAt = now
	w.IncrementVersion()

	return nil
}

// Cancel cancels the order with a reason
func (w *WorkOrder) Cancel(reason string) error {
	if err := w.TransitionTo(StatusCancelled); err != nil {
		return err
	}
	w.CancelReason = reason
	return nil
}

// AssignTechnician assigns the order to a technician
func (w *WorkOrder) AssignTechnician(technicianID uuid.UUID) error {
	if technicianID == uuid.Nil {
		return shared.NewDomainError("INVALID_TECHNICIAN", "Technician ID cannot be empty")
	}
	w.TechnicianID = &technicianID
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}

// SetPriority sets the order priority
func (w *WorkOrder) SetPriority(priority Priority) error {
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", "Unknown priority")
	}
	w.Priority = priority
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}

// RecalculateTotals recomputes subtotal, tax and total from the given lines
// and re-derives the payment status against the new total.
func (w *WorkOrder) RecalculateTotals(lines []WorkOrderLine) {
	subtotal := decimal.Zero
	for i := range lines {
		subtotal = subtotal.Add(lines[i].LineTotal)
	}

	w.Subtotal = subtotal
	w.TaxAmount = subtotal.Mul(w.TaxRate).Round(2)
	w.Total = subtotal.Add(w.TaxAmount)
	w.PaymentStatus = w.derivePaymentStatus()
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// ApplyPayment adds a payment amount to the order, rejecting overpayment
// beyond the rounding tolerance.
func (w *WorkOrder) ApplyPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if w.AmountPaid.Add(amount).GreaterThan(w.Total.Add(PaymentEpsilon)) {
		return shared.ErrOverpayment
	}

	w.AmountPaid = w.AmountPaid.Add(amount)
	w.PaymentStatus = w.derivePaymentStatus()
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// OutstandingAmount returns total - amount paid (never negative)
func (w *WorkOrder) OutstandingAmount() decimal.Decimal {
	outstanding := w.Total.Sub(w.AmountPaid)
	if outstanding.IsNegative() {
		return decimal.Zero
	}
	return outstanding
}

func (w *WorkOrder) derivePaymentStatus() PaymentStatus {
	if w.AmountPaid.LessThanOrEqual(decimal.Zero) {
		return PaymentStatusUnpaid
	}
	if w.AmountPaid.GreaterThanOrEqual(w.Total.Sub(PaymentEpsilon)) {
		return PaymentStatusPaid
	}
	return PaymentStatusPartial
}
