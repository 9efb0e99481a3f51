package persistence

import (
	"context"

	appworkorder "github.com/fieldserv/backend/internal/application/workorder"
	"github.com/fieldserv/backend/internal/domain/inventory"
	"github.com/fieldserv/backend/internal/domain/workorder"
	"gorm.io/gorm"
)

// GormWorkOrderTransactionScope implements the work order transaction scope
// with a real database transaction.
type GormWorkOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormWorkOrderTransactionScope creates a new work order transaction scope
func NewGormWorkOrderTransactionScope(db *gorm.DB) *GormWorkOrderTransactionScope {
	return &GormWorkOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormWorkOrderTransactionScope) Execute(ctx context.Context, fn func(repos appworkorder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormWorkOrderTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormWorkOrderTransactionalRepositories provides repositories bound to a transaction
type gormWorkOrderTransactionalRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the work order repository scoped to the transaction
func (r *gormWorkOrderTransactionalRepositories) OrderRepo() workorder.WorkOrderRepository {
	return NewGormWorkOrderRepository(r.tx)
}

// LineRepo returns the work order line repository scoped to the transaction
func (r *gormWorkOrderTransactionalRepositories) LineRepo() workorder.WorkOrderLineRepository {
	return NewGormWorkOrderLineRepository(r.tx)
}

// PaymentRepo returns the payment repository scoped to the transaction
func (r *gormWorkOrderTransactionalRepositories) PaymentRepo() workorder.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// BalanceRepo returns the stock balance repository scoped to the transaction
func (r *gormWorkOrderTransactionalRepositories) BalanceRepo() inventory.StockBalanceRepository {
	return NewGormStockBalanceRepository(r.tx)
}

// MovementRepo returns the movement repository scoped to the transaction
func (r *gormWorkOrderTransactionalRepositories) MovementRepo() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

var _ appworkorder.TransactionScope = (*GormWorkOrderTransactionScope)(nil)
var _ appworkorder.TransactionalRepositories = (*gormWorkOrderTransactionalRepositories)(nil)
