package purchasing

import (
	"context"

	"github.com/fieldserv/backend/internal/domain/inventory"
	"github.com/fieldserv/backend/internal/domain/purchasing"
)

// TransactionScope provides transactional access to the purchase repository
// plus the ledger repositories. Receiving writes the purchase, its stock
// balances and the stock-in movements as one unit.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories bound to the current
// transaction.
type TransactionalRepositories interface {
	// PurchaseRepo returns the purchase repository scoped to the transaction
	PurchaseRepo() purchasing.PurchaseRepository
	// BalanceRepo returns the stock balance repository scoped to the transaction
	BalanceRepo() inventory.StockBalanceRepository
	// MovementRepo returns the movement repository scoped to the transaction
	MovementRepo() inventory.MovementRepository
}

// NoOpTransactionScope runs the function against plain repositories without a
// real transaction. Used in unit tests.
type NoOpTransactionScope struct {
	purchaseRepo purchasing.PurchaseRepository
	balanceRepo  inventory.StockBalanceRepository
	movementRepo inventory.MovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	purchaseRepo purchasing.PurchaseRepository,
	balanceRepo inventory.StockBalanceRepository,
	movementRepo inventory.MovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		purchaseRepo: purchaseRepo,
		balanceRepo:  balanceRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PurchaseRepo returns the purchase repository
func (s *NoOpTransactionScope) PurchaseRepo() purchasing.PurchaseRepository {
	return s.purchaseRepo
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
