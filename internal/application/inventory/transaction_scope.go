package inventory

import (
	"context"

	"github.com/fieldserv/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the ledger repositories.
// A ledger operation mutates a stock balance and appends a movement; both
// writes must commit or roll back together, so every MovementService
// operation runs inside Execute.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the ledger repositories bound to the
// current transaction.
type TransactionalRepositories interface {
	// BalanceRepo returns the stock balance repository scoped to the transaction
	BalanceRepo() inventory.StockBalanceRepository
	// MovementRepo returns the movement repository scoped to the transaction
	MovementRepo() inventory.MovementRepository
}

// NoOpTransactionScope runs the function against plain repositories without a
// real transaction. Used in unit tests.
type NoOpTransactionScope struct {
	balanceRepo  inventory.StockBalanceRepository
	movementRepo inventory.MovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	balanceRepo inventory.StockBalanceRepository,
	movementRepo inventory.MovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		balanceRepo:  balanceRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
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
