package inventory

import (
	"context"
	"time"

	"github.com/fieldserv/backend/internal/domain/catalog"
	"github.com/fieldserv/backend/internal/domain/identity"
	"github.com/fieldserv/backend/internal/domain/inventory"
	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// IdempotencyTTL is how long a processed request key is remembered
	IdempotencyTTL = 24 * time.Hour
)

// MovementService handles ledger operations: stock in/out, transfers,
// count adjustments and returns. Every mutation runs inside a transaction
// scope so the balance update and the movement append commit together.
type MovementService struct {
	scope        TransactionScope
	balanceRepo  inventory.StockBalanceRepository
	movementRepo inventory.MovementRepository
	itemRepo     catalog.CatalogItemRepository
	locationRepo catalog.LocationRepository
	ledger       *inventory.LedgerService
	idempotency  shared.IdempotencyStore
}

// NewMovementService creates a new MovementService
func NewMovementService(
	scope TransactionScope,
	balanceRepo inventory.StockBalanceRepository,
	movementRepo inventory.MovementRepository,
	itemRepo catalog.CatalogItemRepository,
	locationRepo catalog.LocationRepository,
) *MovementService {
	return &MovementService{
		scope:        scope,
		balanceRepo:  balanceRepo,
		movementRepo: movementRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		ledger:       inventory.NewLedgerService(),
	}
}

// SetIdempotencyStore sets the optional store for request deduplication
func (s *MovementService) SetIdempotencyStore(store shared.IdempotencyStore) {
	s.idempotency = store
}

// StockIn registers stock entering a location
func (s *MovementService) StockIn(ctx context.Context, actor identity.Actor, req StockInRequest) (*MovementResponse, error) {
	if err := actor.Require(actor.Role.CanManageInventory()); err != nil {
		return nil, err
	}
	if err := s.validateStockableItem(ctx, actor.TenantID, req.ItemID); err != nil {
		return nil, err
	}
	if err := s.validateLocation(ctx, actor.TenantID, req.LocationID); err != nil {
		return nil, err
	}
	if err := s.rejectDuplicateRequest(ctx, actor.TenantID, req.RequestKey); err != nil {
		return nil, err
	}

	reason := inventory.ReasonManual
	if req.Reason != "" {
		reason = inventory.ReasonCode(req.Reason)
	}

	var movement *inventory.Movement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		balance, err := repos.BalanceRepo().GetOrCreate(ctx, actor.TenantID, req.ItemID, req.LocationID)
		if err != nil {
			return err
		}

		movement, err = s.ledger.ApplyIn(balance, req.Quantity, req.UnitCost, inventory.MovementContext{
			Reason:        reason,
			ReferenceType: inventory.ReferenceTypeManual,
			Notes:         req.Notes,
			ActorID:       actor.UserID,
		})
		if err != nil {
			return err
		}

		if err := repos.BalanceRepo().SaveWithLock(ctx, balance); err != nil {
			return err
		}
		return repos.MovementRepo().Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	s.markRequestProcessed(ctx, actor.TenantID, req.RequestKey)

	resp := ToMovementResponse(movement)
	return &resp, nil
}

// StockOut registers stock leaving a location. Fails with INSUFFICIENT_STOCK
// when the balance cannot cover the requested quantity; nothing is written
// in that case.
func (s *MovementService) StockOut(ctx context.Context, actor identity.Actor, req StockOutRequest) (*MovementResponse, error) {
	if err := actor.Require(actor.Role.CanManageInventory()); err != nil {
		return nil, err
	}
	if err := s.validateStockableItem(ctx, actor.TenantID, req.ItemID); err != nil {
		return nil, err
	}
	if err := s.validateLocation(ctx, actor.TenantID, req.LocationID); err != nil {
		return nil, err
	}
	if err := s.rejectDuplicateRequest(ctx, actor.TenantID, req.RequestKey); err != nil {
		return nil, err
	}

	reason := inventory.ReasonManual
	if req.Reason != "" {
		reason = inventory.ReasonCode(req.Reason)
	}

	var movement *inventory.Movement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		balance, err := repos.BalanceRepo().FindByItemAndLocation(ctx, actor.TenantID, req.ItemID, req.LocationID)
		if err != nil {
			return err
		}
		if balance == nil {
			return shared.ErrInsufficientStock
		}

		movement, err = s.ledger.ApplyOut(balance, req.Quantity, inventory.MovementContext{
			Reason:        reason,
			ReferenceType: inventory.ReferenceTypeManual,
			Notes:         req.Notes,
			ActorID:       actor.UserID,
		})
		if err != nil {
			return err
		}

		if err := repos.BalanceRepo().SaveWithLock(ctx, balance); err != nil {
			return err
		}
		return repos.MovementRepo().Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	s.markRequestProcessed(ctx, actor.TenantID, req.RequestKey)

	resp := ToMovementResponse(movement)
	return &resp, nil
}

// Transfer moves stock between two locations as a single movement. Both
// balances change atomically; an insufficient source leaves both untouched.
func (s *MovementService) Transfer(ctx context.Context, actor identity.Actor, req TransferRequest) (*MovementResponse, error) {
	if err := actor.Require(actor.Role.CanManageInventory()); err != nil {
		return nil, err
	}
	if req.FromLocationID == req.ToLocationID {
		return nil, shared.NewDomainError("SAME_LOCATION", "Source and destination locations must differ")
	}
	if err := s.validateStockableItem(ctx, actor.TenantID, req.ItemID); err != nil {
		return nil, err
	}
	if err := s.validateLocation(ctx, actor.TenantID, req.FromLocationID); err != nil {
		return nil, err
	}
	if err := s.validateLocation(ctx, actor.TenantID, req.ToLocationID); err != nil {
		return nil, err
	}
	if err := s.rejectDuplicateRequest(ctx, actor.TenantID, req.RequestKey); err != nil {
		return nil, err
	}

	var movement *inventory.Movement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		from, err := repos.BalanceRepo().FindByItemAndLocation(ctx, actor.TenantID, req.ItemID, req.FromLocationID)
		if err != nil {
			return err
		}
		if from == nil {
			return shared.ErrInsufficientStock
		}
		to, err := repos.BalanceRepo().GetOrCreate(ctx, actor.TenantID, req.ItemID, req.ToLocationID)
		if err != nil {
			return err
		}

		movement, err = s.ledger.ApplyTransfer(from, to, req.Quantity, inventory.MovementContext{
			Reason:  inventory.ReasonTransfer,
			Notes:   req.Notes,
			ActorID: actor.UserID,
		})
		if err != nil {
			return err
		}

		if err := repos.BalanceRepo().SaveWithLock(ctx, from); err != nil {
			return err
		}
		if err := repos.BalanceRepo().SaveWithLock(ctx, to); err != nil {
			return err
		}
		return repos.MovementRepo().Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	s.markRequestProcessed(ctx, actor.TenantID, req.RequestKey)

	resp := ToMovementResponse(movement)
	return &resp, nil
}

// AdjustToTarget sets a balance to the counted target quantity and records
// the delta as one ADJUST movement. Returns nil when the target already
// matches the current balance.
func (s *MovementService) AdjustToTarget(ctx context.Context, actor identity.Actor, req AdjustToTargetRequest) (*MovementResponse, error) {
	if err := actor.Require(actor.Role.CanManageInventory()); err != nil {
		return nil, err
	}
	if req.TargetQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Target quantity cannot be negative")
	}
	if err := s.validateStockableItem(ctx, actor.TenantID, req.ItemID); err != nil {
		return nil, err
	}
	if err := s.validateLocation(ctx, actor.TenantID, req.LocationID); err != nil {
		return nil, err
	}
	if err := s.rejectDuplicateRequest(ctx, actor.TenantID, req.RequestKey); err != nil {
		return nil, err
	}

	reason := inventory.ReasonStockCount
	if req.Reason != "" {
		reason = inventory.ReasonCode(req.Reason)
	}

	var movement *inventory.Movement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		balance, err := repos.BalanceRepo().GetOrCreate(ctx, actor.TenantID, req.ItemID, req.LocationID)
		if err != nil {
			return err
		}

		movement, err = s.ledger.ApplyAdjustToTarget(balance, req.TargetQuantity, inventory.MovementContext{
			Reason:        reason,
			ReferenceType: inventory.ReferenceTypeManual,
			Notes:         req.Notes,
			ActorID:       actor.UserID,
		})
		if err != nil {
			return err
		}
		if movement == nil {
			// Target already matched; nothing to write
			return nil
		}

		if err := repos.BalanceRepo().SaveWithLock(ctx, balance); err != nil {
			return err
		}
		return repos.MovementRepo().Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	s.markRequestProcessed(ctx, actor.TenantID, req.RequestKey)
	if movement == nil {
		return nil, nil
	}

	resp := ToMovementResponse(movement)
	return &resp, nil
}

// Return puts material back into stock with a back-reference to the
// originating document.
func (s *MovementService) Return(ctx context.Context, actor identity.Actor, req ReturnRequest) (*MovementResponse, error) {
	if err := actor.Require(actor.Role.CanManageInventory()); err != nil {
		return nil, err
	}
	if err := s.validateStockableItem(ctx, actor.TenantID, req.ItemID); err != nil {
		return nil, err
	}
	if err := s.validateLocation(ctx, actor.TenantID, req.LocationID); err != nil {
		return nil, err
	}
	if err := s.rejectDuplicateRequest(ctx, actor.TenantID, req.RequestKey); err != nil {
		return nil, err
	}

	reason := inventory.ReasonWorkOrderReturn
	if req.Reason != "" {
		reason = inventory.ReasonCode(req.Reason)
	}

	var movement *inventory.Movement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		balance, err := repos.BalanceRepo().GetOrCreate(ctx, actor.TenantID, req.ItemID, req.LocationID)
		if err != nil {
			return err
		}

		movement, err = s.ledger.ApplyReturn(balance, req.Quantity, inventory.MovementContext{
			Reason:        reason,
			ReferenceType: inventory.ReferenceType(req.ReferenceType),
			ReferenceID:   req.ReferenceID,
			Notes:         req.Notes,
			ActorID:       actor.UserID,
		})
		if err != nil {
			return err
		}

		if err := repos.BalanceRepo().SaveWithLock(ctx, balance); err != nil {
			return err
		}
		return repos.MovementRepo().Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	s.markRequestProcessed(ctx, actor.TenantID, req.RequestKey)

	resp := ToMovementResponse(movement)
	return &resp, nil
}

// GetBalance returns the balance for an item at a location. A missing row is
// reported as a zero balance rather than NOT_FOUND.
func (s *MovementService) GetBalance(ctx context.Context, actor identity.Actor, itemID, locationID uuid.UUID) (*BalanceResponse, error) {
	balance, err := s.balanceRepo.FindByItemAndLocation(ctx, actor.TenantID, itemID, locationID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		zero, err := inventory.NewStockBalance(actor.TenantID, itemID, locationID)
		if err != nil {
			return nil, err
		}
		resp := ToBalanceResponse(zero)
		return &resp, nil
	}
	resp := ToBalanceResponse(balance)
	return &resp, nil
}

// ListBalances returns balances for the tenant, optionally filtered by item
// or location
func (s *MovementService) ListBalances(ctx context.Context, actor identity.Actor, filter BalanceListFilter) (*shared.Paginated[BalanceResponse], error) {
	f := toBalanceFilter(filter)

	var balances []inventory.StockBalance
	var err error
	switch {
	case filter.LocationID != nil:
		balances, err = s.balanceRepo.FindByLocation(ctx, actor.TenantID, *filter.LocationID, f)
	case filter.ItemID != nil:
		balances, err = s.balanceRepo.FindByItem(ctx, actor.TenantID, *filter.ItemID, f)
	default:
		balances, err = s.balanceRepo.FindAllForTenant(ctx, actor.TenantID, f)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.balanceRepo.CountForTenant(ctx, actor.TenantID, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToBalanceResponses(balances), total, f.Page, f.PageSize)
	return &result, nil
}

// TotalQuantity sums an item's quantity across all locations
func (s *MovementService) TotalQuantity(ctx context.Context, actor identity.Actor, itemID uuid.UUID) (decimal.Decimal, error) {
	return s.balanceRepo.SumQuantityByItem(ctx, actor.TenantID, itemID)
}

// GetMovement returns one movement by id
func (s *MovementService) GetMovement(ctx context.Context, actor identity.Actor, id uuid.UUID) (*MovementResponse, error) {
	movement, err := s.movementRepo.FindByIDForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, shared.ErrNotFound
	}
	resp := ToMovementResponse(movement)
	return &resp, nil
}

// ListMovements returns the movement history for the tenant
func (s *MovementService) ListMovements(ctx context.Context, actor identity.Actor, filter MovementListFilter) (*shared.Paginated[MovementResponse], error) {
	f := toMovementFilter(filter)

	var movements []inventory.Movement
	var err error
	switch {
	case filter.ItemID != nil:
		movements, err = s.movementRepo.FindByItem(ctx, actor.TenantID, *filter.ItemID, f)
	case filter.LocationID != nil:
		movements, err = s.movementRepo.FindByLocation(ctx, actor.TenantID, *filter.LocationID, f)
	default:
		movements, err = s.movementRepo.FindAllForTenant(ctx, actor.TenantID, f)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.movementRepo.CountForTenant(ctx, actor.TenantID, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToMovementResponses(movements), total, f.Page, f.PageSize)
	return &result, nil
}

// MovementsForReference returns the movements linked to a document
func (s *MovementService) MovementsForReference(ctx context.Context, actor identity.Actor, refType inventory.ReferenceType, refID string) ([]MovementResponse, error) {
	movements, err := s.movementRepo.FindByReference(ctx, actor.TenantID, refType, refID)
	if err != nil {
		return nil, err
	}
	return ToMovementResponses(movements), nil
}

// validateStockableItem ensures the item exists, belongs to the tenant, is a
// stockable product and is active
func (s *MovementService) validateStockableItem(ctx context.Context, tenantID, itemID uuid.UUID) error {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Catalog item not found")
	}
	if !item.IsStockable() {
		return shared.NewDomainError("ITEM_NOT_STOCKABLE", "Services do not participate in inventory movements")
	}
	if !item.Active {
		return shared.NewDomainError("ITEM_INACTIVE", "Catalog item is inactive")
	}
	return nil
}

// validateLocation ensures the location exists, belongs to the tenant and is active
func (s *MovementService) validateLocation(ctx context.Context, tenantID, locationID uuid.UUID) error {
	location, err := s.locationRepo.FindByIDForTenant(ctx, tenantID, locationID)
	if err != nil {
		return err
	}
	if location == nil {
		return shared.NewDomainError("LOCATION_NOT_FOUND", "Location not found")
	}
	if !location.Active {
		return shared.NewDomainError("LOCATION_INACTIVE", "Location is inactive")
	}
	return nil
}

// rejectDuplicateRequest fails with DUPLICATE_REQUEST when the key has
// already been committed. Keys are recorded by markRequestProcessed only
// after a successful transaction, so a failed operation never burns its key
// and the caller is free to retry.
func (s *MovementService) rejectDuplicateRequest(ctx context.Context, tenantID uuid.UUID, key string) error {
	if s.idempotency == nil || key == "" {
		return nil
	}
	processed, err := s.idempotency.IsProcessed(ctx, tenantID.String()+":"+key)
	if err != nil {
		return err
	}
	if processed {
		return shared.NewDomainError("DUPLICATE_REQUEST", "Request was already processed")
	}
	return nil
}

// markRequestProcessed records the key after the transaction committed.
// Best effort: the write already happened, so a store failure must not turn
// a committed operation into an error.
func (s *MovementService) markRequestProcessed(ctx context.Context, tenantID uuid.UUID, key string) {
	if s.idempotency == nil || key == "" {
		return
	}
	_, _ = s.idempotency.MarkProcessed(ctx, tenantID.String()+":"+key, IdempotencyTTL)
}

func toBalanceFilter(filter BalanceListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	if filter.ItemID != nil {
		f.Filters["item_id"] = *filter.ItemID
	}
	if filter.LocationID != nil {
		f.Filters["location_id"] = *filter.LocationID
	}
	return f
}

func toMovementFilter(filter MovementListFilter) shared.Filter {
	f := shared.DefaultFilter()
	f.OrderBy = "occurred_at"
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	if filter.ItemID != nil {
		f.Filters["item_id"] = *filter.ItemID
	}
	if filter.LocationID != nil {
		f.Filters["location_id"] = *filter.LocationID
	}
	if filter.Type != "" {
		f.Filters["type"] = filter.Type
	}
	if filter.ReferenceType != "" {
		f.Filters["reference_type"] = filter.ReferenceType
	}
	if filter.ReferenceID != "" {
		f.Filters["reference_id"] = filter.ReferenceID
	}
	return f
}
