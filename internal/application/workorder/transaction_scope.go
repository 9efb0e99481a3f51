package workorder

import (
	"context"

	"github.com/fieldserv/backend/internal/domain/inventory"
	"github.com/fieldserv/backend/internal/domain/workorder"
)

// TransactionScope provides transactional access to the work order
// repositories plus the ledger repositories. Line operations touch both
// sides: a MATERIAL line write and its stock movement must commit together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories bound to the current
// transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the work order repository scoped to the transaction
	OrderRepo() workorder.WorkOrderRepository
	// LineRepo returns the work order line repository scoped to the transaction
	LineRepo() workorder.WorkOrderLineRepository
	// PaymentRepo returns the payment repository scoped to the transaction
	PaymentRepo() workorder.PaymentRepository
	// BalanceRepo returns the stock balance repository scoped to the transaction
	BalanceRepo() inventory.StockBalanceRepository
	// MovementRepo returns the movement repository scoped to the transaction
	MovementRepo() inventory.MovementRepository
}

// NoOpTransactionScope runs the function against plain repositories without a
// real transaction. Used in unit tests.
type NoOpTransactionScope struct {
	orderRepo    workorder.WorkOrderRepository
	lineRepo     workorder.WorkOrderLineRepository
	paymentRepo  workorder.PaymentRepository
	balanceRepo  inventory.StockBalanceRepository
	movementRepo inventory.MovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	orderRepo workorder.WorkOrderRepository,
	lineRepo workorder.WorkOrderLineRepository,
	paymentRepo workorder.PaymentRepository,
	balanceRepo inventory.StockBalanceRepository,
	movementRepo inventory.MovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:    orderRepo,
		lineRepo:     lineRepo,
		paymentRepo:  paymentRepo,
		balanceRepo:  balanceRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the work order repository
func (s *NoOpTransactionScope) OrderRepo() workorder.WorkOrderRepository {
	return s.orderRepo
}

// LineRepo returns the work order line repository
func (s *NoOpTransactionScope) LineRepo() workorder.WorkOrderLineRepository {
	return s.lineRepo
}

// PaymentRepo returns the payment repository
func (s *NoOpTransactionScope) PaymentRepo() workorder.PaymentRepository {
	return s.paymentRepo
}

// BalanceRepo returns the stock balance repository
func (s *NoOpTransactionScope) BalanceRepo() inventory.StockBalanceRepository {
	return s.balanceRepo
}

// MovementRepo returns the movement repository
func (s *NoOpTransactionScope) MovementRepo() inventory.MovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
