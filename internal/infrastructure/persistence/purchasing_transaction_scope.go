package persistence

import (
	"context"

	apppurchasing "github.com/fieldserv/backend/internal/application/purchasing"
	"github.com/fieldserv/backend/internal/domain/inventory"
	"github.com/fieldserv/backend/internal/domain/purchasing"
	"gorm.io/gorm"
)

// GormPurchasingTransactionScope implements the purchasing transaction scope
// with a real database transaction.
type GormPurchasingTransactionScope struct {
	db *gorm.DB
}

// NewGormPurchasingTransactionScope creates a new purchasing transaction scope
func NewGormPurchasingTransactionScope(db *gorm.DB) *GormPurchasingTransactionScope {
	return &GormPurchasingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormPurchasingTransactionScope) Execute(ctx context.Context, fn func(repos apppurchasing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormPurchasingTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormPurchasingTransactionalRepositories provides repositories bound to a transaction
type gormPurchasingTransactionalRepositories struct {
	tx *gorm.DB
}

// PurchaseRepo returns the purchase repository scoped to the transaction
func (r *gormPurchasingTransactionalRepositories) PurchaseRepo() purchasing.PurchaseRepository {
	return NewGormPurchaseRepository(r.tx)
}

// BalanceRepo returns the stock balance repository scoped to the transaction
func (r *gormPurchasingTransactionalRepositories) BalanceRepo() inventory.StockBalanceRepository {
	return NewGormStockBalanceRepository(r.tx)
}

// MovementRepo returns the movement repository scoped to the transaction
func (r *gormPurchasingTransactionalRepositories) MovementRepo() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

var _ apppurchasing.TransactionScope = (*GormPurchasingTransactionScope)(nil)
var _ apppurchasing.TransactionalRepositories = (*gormPurchasingTransactionalRepositories)(nil)
