package workorder

import (
	"context"

	"github.com/fieldserv/backend/internal/domain/identity"
	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/fieldserv/backend/internal/domain/workorder"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService reconciles payments against work orders. The payment insert
// and the order's amount_paid/payment_status update commit in one
// transaction, so the order state always matches the sum of its payments.
type PaymentService struct {
	scope       TransactionScope
	orderRepo   workorder.WorkOrderRepository
	paymentRepo workorder.PaymentRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	scope TransactionScope,
	orderRepo workorder.WorkOrderRepository,
	paymentRepo workorder.PaymentRepository,
) *PaymentService {
	return &PaymentService{
		scope:       scope,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
	}
}

// RegisterPayment records a payment against a work order. Overpayment beyond
// the rounding tolerance is rejected and nothing is written.
func (s *PaymentService) RegisterPayment(ctx context.Context, actor identity.Actor, workOrderID uuid.UUID, req RegisterPaymentRequest) (*RegisterPaymentResponse, error) {
	if err := actor.Require(actor.Role.CanRegisterPayments()); err != nil {
		return nil, err
	}

	var payment *workorder.Payment
	var order *workorder.WorkOrder
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForTenant(ctx, actor.TenantID, workOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return shared.ErrNotFound
		}
		if order.Status == workorder.StatusCancelled {
			return shared.NewDomainError("INVALID_STATE", "Cannot register a payment on a cancelled order")
		}

		// Rejects non-positive amounts and overpayment before any write
		if err := order.ApplyPayment(req.Amount); err != nil {
			return err
		}

		payment, err = workorder.NewPayment(actor.TenantID, workOrderID, req.Amount, workorder.PaymentMethod(req.Method))
		if err != nil {
			return err
		}
		payment.WithCreatedBy(actor.UserID)
		if req.Reference != "" {
			payment.WithReference(req.Reference)
		}
		if req.Notes != "" {
			payment.WithNotes(req.Notes)
		}
		if req.BankAccountID != nil {
			payment.WithBankAccount(*req.BankAccountID)
		}
		if req.PaidAt != nil {
			payment.WithPaidAt(*req.PaidAt)
		}

		if err := repos.PaymentRepo().Create(ctx, payment); err != nil {
			return err
		}
		return repos.OrderRepo().SaveWithLock(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	return &RegisterPaymentResponse{
		Payment: ToPaymentResponse(payment),
		Order:   ToWorkOrderResponse(order),
	}, nil
}

// ListPayments returns all payments against a work order
func (s *PaymentService) ListPayments(ctx context.Context, actor identity.Actor, workOrderID uuid.UUID) ([]PaymentResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, actor.TenantID, workOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.ErrNotFound
	}

	payments, err := s.paymentRepo.FindByWorkOrder(ctx, actor.TenantID, workOrderID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

// OutstandingAmount returns how much of the order total is still unpaid
func (s *PaymentService) OutstandingAmount(ctx context.Context, actor identity.Actor, workOrderID uuid.UUID) (decimal.Decimal, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, actor.TenantID, workOrderID)
	if err != nil {
		return decimal.Zero, err
	}
	if order == nil {
		return decimal.Zero, shared.ErrNotFound
	}
	return order.OutstandingAmount(), nil
}

// Reconcile recomputes the order's amount_paid from the payment ledger and
// repairs the stored value when they drifted apart.
func (s *PaymentService) Reconcile(ctx context.Context, actor identity.Actor, workOrderID uuid.UUID) (*WorkOrderResponse, error) {
	if err := actor.Require(actor.Role.CanRegisterPayments()); err != nil {
		return nil, err
	}

	var order *workorder.WorkOrder
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDForTenant(ctx, actor.TenantID, workOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return shared.ErrNotFound
		}

		paid, err := repos.PaymentRepo().SumByWorkOrder(ctx, actor.TenantID, workOrderID)
		if err != nil {
			return err
		}
		if order.AmountPaid.Equal(paid) {
			return nil
		}

		order.AmountPaid = decimal.Zero
		order.PaymentStatus = workorder.PaymentStatusUnpaid
		if paid.IsPositive() {
			if err := order.ApplyPayment(paid); err != nil {
				return err
			}
		}
		return repos.OrderRepo().SaveWithLock(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	resp := ToWorkOrderResponse(order)
	return &resp, nil
}
