package workorder

import (
	"time"

	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was made
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodOther    PaymentMethod = "OTHER"
)

// IsValid returns true if the payment method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodOther:
		return true
	}
	return false
}

// Payment records one payment against a work order. Payments are append-only;
// the order's amount_paid and payment_status are derived from them.
type Payment struct {
	shared.BaseEntity
	TenantID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	WorkOrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Method        PaymentMethod   `gorm:"type:varchar(20);not null"`
	Reference     string          `gorm:"type:varchar(100)"`
	Notes         string          `gorm:"type:varchar(255)"`
	BankAccountID *uuid.UUID      `gorm:"type:uuid;index"`
	PaidAt        time.Time       `gorm:"not null"`
	CreatedBy     *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a new payment record
func NewPayment(
	tenantID, workOrderID uuid.UUID,
	amount decimal.Decimal,
	method PaymentMethod,
) (*Payment, error) {
	if workOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WORK_ORDER", "Work order ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Unknown payment method")
	}

	return &Payment{
		BaseEntity:  shared.NewBaseEntity(),
		TenantID:    tenantID,
		WorkOrderID: workOrderID,
		Amount:      amount,
		Method:      method,
		PaidAt:      time.Now(),
	}, nil
}

// WithReference sets the external reference (receipt, transfer id)
func (p *Payment) WithReference(reference string) *Payment {
	p.Reference = reference
	return p
}

// WithNotes sets free-text notes
func (p *Payment) WithNotes(notes string) *Payment {
	p.Notes = notes
	return p
}

// WithBankAccount links the payment to a bank account
func (p *Payment) WithBankAccount(bankAccountID uuid.UUID) *Payment {
	p.BankAccountID = &bankAccountID
	return p
}

// WithCreatedBy records the registering user
func (p *Payment) WithCreatedBy(userID uuid.UUID) *Payment {
	p.CreatedBy = &userID
	return p
}

// WithPaidAt overrides the payment date
func (p *Payment) WithPaidAt(at time.Time) *Payment {
	p.PaidAt = at
	return p
}
