package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldserv/backend/internal/domain/catalog"
	"github.com/fieldserv/backend/internal/domain/identity"
	"github.com/fieldserv/backend/internal/domain/inventory"
	"github.com/fieldserv/backend/internal/domain/shared"
)

type serviceFixture struct {
	svc          *MovementService
	balanceRepo  *MockStockBalanceRepository
	movementRepo *MockMovementRepository
	itemRepo     *MockCatalogItemRepository
	locationRepo *MockLocationRepository
	actor        identity.Actor
	tenantID     uuid.UUID
}

func newServiceFixture(t *testing.T) *serviceFixture {
	balanceRepo := &MockStockBalanceRepository{}
	movementRepo := &MockMovementRepository{}
	itemRepo := &MockCatalogItemRepository{}
	locationRepo := &MockLocationRepository{}

	tenantID := uuid.New()
	actor, err := identity.NewActor(uuid.New(), tenantID, identity.RoleSupervisor)
	require.NoError(t, err)

	scope := NewNoOpTransactionScope(balanceRepo, movementRepo)
	svc := NewMovementService(scope, balanceRepo, movementRepo, itemRepo, locationRepo)

	return &serviceFixture{
		svc:          svc,
		balanceRepo:  balanceRepo,
		movementRepo: movementRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		actor:        actor,
		tenantID:     tenantID,
	}
}

func (f *serviceFixture) activeProduct(t *testing.T) *catalog.CatalogItem {
	item, err := catalog.NewCatalogItem(f.tenantID, catalog.ItemKindProduct, "Copper pipe", "m")
	require.NoError(t, err)
	return item
}

func (f *serviceFixture) activeLocation(t *testing.T) *catalog.Location {
	loc, err := catalog.NewLocation(f.tenantID, "Main warehouse", catalog.LocationTypeWarehouse)
	require.NoError(t, err)
	return loc
}

func (f *serviceFixture) balanceFor(t *testing.T, itemID, locationID uuid.UUID, qty, cost int64) *inventory.StockBalance {
	balance, err := inventory.NewStockBalance(f.tenantID, itemID, locationID)
	require.NoError(t, err)
	if qty > 0 {
		require.NoError(t, balance.Increase(decimal.NewFromInt(qty), decimal.NewFromInt(cost)))
	}
	return balance
}

// fakeIdempotencyStore remembers keys in memory
type fakeIdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{seen: make(map[string]bool)}
}

func (s *fakeIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	return true, nil
}

func (s *fakeIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[key], nil
}

var _ shared.IdempotencyStore = (*fakeIdempotencyStore)(nil)

func TestMovementService_StockIn(t *testing.T) {
	ctx := context.Background()

	t.Run("writes balance and movement together", func(t *testing.T) {
		f := newServiceFixture(t)
		item := f.activeProduct(t)
		loc := f.activeLocation(t)
		balance := f.balanceFor(t, item.ID, loc.ID, 0, 0)

		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, item.ID).Return(item, nil)
		f.locationRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, loc.ID).Return(loc, nil)
		f.balanceRepo.On("GetOrCreate", mock.Anything, f.tenantID, item.ID, loc.ID).Return(balance, nil)
		f.balanceRepo.On("SaveWithLock", mock.Anything, balance).Return(nil)
		f.movementRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.StockIn(ctx, f.actor, StockInRequest{
			ItemID:     item.ID,
			LocationID: loc.ID,
			Quantity:   decimal.NewFromInt(10),
			UnitCost:   decimal.NewFromFloat(2.5),
		})
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Equal(t, "IN", resp.Type)
		assert.True(t, resp.Quantity.Equal(decimal.NewFromInt(10)))
		require.NotNil(t, resp.ToBalanceAfter)
		assert.True(t, resp.ToBalanceAfter.Equal(decimal.NewFromInt(10)))
		assert.True(t, balance.Quantity.Equal(decimal.NewFromInt(10)))

		f.balanceRepo.AssertCalled(t, "SaveWithLock", mock.Anything, balance)
		f.movementRepo.AssertCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("forbidden for technician", func(t *testing.T) {
		f := newServiceFixture(t)
		actor, err := identity.NewActor(uuid.New(), f.tenantID, identity.RoleTechnician)
		require.NoError(t, err)

		_, err = f.svc.StockIn(ctx, actor, StockInRequest{ItemID: uuid.New(), LocationID: uuid.New(), Quantity: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("unknown item", func(t *testing.T) {
		f := newServiceFixture(t)
		itemID := uuid.New()
		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, itemID).Return(nil, nil)

		_, err := f.svc.StockIn(ctx, f.actor, StockInRequest{ItemID: itemID, LocationID: uuid.New(), Quantity: decimal.NewFromInt(1)})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ITEM_NOT_FOUND", domainErr.Code)
	})

	t.Run("service items are not stockable", func(t *testing.T) {
		f := newServiceFixture(t)
		service, err := catalog.NewCatalogItem(f.tenantID, catalog.ItemKindService, "Diagnosis", "h")
		require.NoError(t, err)
		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, service.ID).Return(service, nil)

		_, err = f.svc.StockIn(ctx, f.actor, StockInRequest{ItemID: service.ID, LocationID: uuid.New(), Quantity: decimal.NewFromInt(1)})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ITEM_NOT_STOCKABLE", domainErr.Code)
	})

	t.Run("inactive item", func(t *testing.T) {
		f := newServiceFixture(t)
		item := f.activeProduct(t)
		item.Deactivate()
		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, item.ID).Return(item, nil)

		_, err := f.svc.StockIn(ctx, f.actor, StockInRequest{ItemID: item.ID, LocationID: uuid.New(), Quantity: decimal.NewFromInt(1)})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ITEM_INACTIVE", domainErr.Code)
	})

	t.Run("inactive location", func(t *testing.T) {
		f := newServiceFixture(t)
		item := f.activeProduct(t)
		loc := f.activeLocation(t)
		loc.Deactivate()
		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, item.ID).Return(item, nil)
		f.locationRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, loc.ID).Return(loc, nil)

		_, err := f.svc.StockIn(ctx, f.actor, StockInRequest{ItemID: item.ID, LocationID: loc.ID, Quantity: decimal.NewFromInt(1)})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "LOCATION_INACTIVE", domainErr.Code)
	})

	t.Run("duplicate request key is rejected", func(t *testing.T) {
		f := newServiceFixture(t)
		f.svc.SetIdempotencyStore(newFakeIdempotencyStore())

		item := f.activeProduct(t)
		loc := f.activeLocation(t)
		balance := f.balanceFor(t, item.ID, loc.ID, 0, 0)

		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, item.ID).Return(item, nil)
		f.locationRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, loc.ID).Return(loc, nil)
		f.balanceRepo.On("GetOrCreate", mock.Anything, f.tenantID, item.ID, loc.ID).Return(balance, nil)
		f.balanceRepo.On("SaveWithLock", mock.Anything, balance).Return(nil)
		f.movementRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		req := StockInRequest{ItemID: item.ID, LocationID: loc.ID, Quantity: decimal.NewFromInt(5), RequestKey: "req-1"}

		_, err := f.svc.StockIn(ctx, f.actor, req)
		require.NoError(t, err)

		_, err = f.svc.StockIn(ctx, f.actor, req)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_REQUEST", domainErr.Code)
		// Only the first submission reached the ledger
		assert.True(t, balance.Quantity.Equal(decimal.NewFromInt(5)))
	})
}

func TestMovementService_StockOut(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements existing balance", func(t *testing.T) {
		f := newServiceFixture(t)
		item := f.activeProduct(t)
		loc := f.activeLocation(t)
		balance := f.balanceFor(t, item.ID, loc.ID, 10, 2)

		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, item.ID).Return(item, nil)
		f.locationRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, loc.ID).Return(loc, nil)
		f.balanceRepo.On("FindByItemAndLocation", mock.Anything, f.tenantID, item.ID, loc.ID).Return(balance, nil)
		f.balanceRepo.On("SaveWithLock", mock.Anything, balance).Return(nil)
		f.movementRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.StockOut(ctx, f.actor, StockOutRequest{ItemID: item.ID, LocationID: loc.ID, Quantity: decimal.NewFromInt(4)})
		require.NoError(t, err)

		assert.Equal(t, "OUT", resp.Type)
		require.NotNil(t, resp.FromBalanceAfter)
		assert.True(t, resp.FromBalanceAfter.Equal(decimal.NewFromInt(6)))
	})

	t.Run("missing balance reads as insufficient stock", func(t *testing.T) {
		f := newServiceFixture(t)
		item := f.activeProduct(t)
		loc := f.activeLocation(t)

		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, item.ID).Return(item, nil)
		f.locationRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, loc.ID).Return(loc, nil)
		f.balanceRepo.On("FindByItemAndLocation", mock.Anything, f.tenantID, item.ID, loc.ID).Return(nil, nil)

		_, err := f.svc.StockOut(ctx, f.actor, StockOutRequest{ItemID: item.ID, LocationID: loc.ID, Quantity: decimal.NewFromInt(1)})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		f.movementRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("insufficient balance writes nothing", func(t *testing.T) {
		f := newServiceFixture(t)
		item := f.activeProduct(t)
		loc := f.activeLocation(t)
		balance := f.balanceFor(t, item.ID, loc.ID, 3, 1)

		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, item.ID).Return(item, nil)
		f.locationRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, loc.ID).Return(loc, nil)
		f.balanceRepo.On("FindByItemAndLocation", mock.Anything, f.tenantID, item.ID, loc.ID).Return(balance, nil)

		_, err := f.svc.StockOut(ctx, f.actor, StockOutRequest{ItemID: item.ID, LocationID: loc.ID, Quantity: decimal.NewFromInt(5)})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		assert.True(t, balance.Quantity.Equal(decimal.NewFromInt(3)))
		f.balanceRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		f.movementRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("failed operation does not burn the request key", func(t *testing.T) {
		f := newServiceFixture(t)
		f.svc.SetIdempotencyStore(newFakeIdempotencyStore())

		item := f.activeProduct(t)
		loc := f.activeLocation(t)
		balance := f.balanceFor(t, item.ID, loc.ID, 3, 1)

		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, item.ID).Return(item, nil)
		f.locationRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, loc.ID).Return(loc, nil)
		f.balanceRepo.On("FindByItemAndLocation", mock.Anything, f.tenantID, item.ID, loc.ID).Return(balance, nil)
		f.balanceRepo.On("SaveWithLock", mock.Anything, balance).Return(nil)
		f.movementRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		// First attempt fails before anything is written
		_, err := f.svc.StockOut(ctx, f.actor, StockOutRequest{
			ItemID: item.ID, LocationID: loc.ID,
			Quantity: decimal.NewFromInt(5), RequestKey: "out-1",
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)

		// Retry with the same key and a coverable quantity succeeds
		resp, err := f.svc.StockOut(ctx, f.actor, StockOutRequest{
			ItemID: item.ID, LocationID: loc.ID,
			Quantity: decimal.NewFromInt(2), RequestKey: "out-1",
		})
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.True(t, balance.Quantity.Equal(decimal.NewFromInt(1)))

		// The committed key now rejects a replay
		_, err = f.svc.StockOut(ctx, f.actor, StockOutRequest{
			ItemID: item.ID, LocationID: loc.ID,
			Quantity: decimal.NewFromInt(1), RequestKey: "out-1",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_REQUEST", domainErr.Code)
		assert.True(t, balance.Quantity.Equal(decimal.NewFromInt(1)))
	})
}

func TestMovementService_Transfer(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects same source and destination", func(t *testing.T) {
		f := newServiceFixture(t)
		locID := uuid.New()

		_, err := f.svc.Transfer(ctx, f.actor, TransferRequest{
			ItemID:         uuid.New(),
			FromLocationID: locID,
			ToLocationID:   locID,
			Quantity:       decimal.NewFromInt(1),
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SAME_LOCATION", domainErr.Code)
	})

	t.Run("moves stock between locations", func(t *testing.T) {
		f := newServiceFixture(t)
		item := f.activeProduct(t)
		fromLoc := f.activeLocation(t)
		toLoc, err := catalog.NewLocation(f.tenantID, "Van 2", catalog.LocationTypeVehicle)
		require.NoError(t, err)

		from := f.balanceFor(t, item.ID, fromLoc.ID, 10, 4)
		to := f.balanceFor(t, item.ID, toLoc.ID, 0, 0)

		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, item.ID).Return(item, nil)
		f.locationRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, fromLoc.ID).Return(fromLoc, nil)
		f.locationRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, toLoc.ID).Return(toLoc, nil)
		f.balanceRepo.On("FindByItemAndLocation", mock.Anything, f.tenantID, item.ID, fromLoc.ID).Return(from, nil)
		f.balanceRepo.On("GetOrCreate", mock.Anything, f.tenantID, item.ID, toLoc.ID).Return(to, nil)
		f.balanceRepo.On("SaveWithLock", mock.Anything, mock.Anything).Return(nil)
		f.movementRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.Transfer(ctx, f.actor, TransferRequest{
			ItemID:         item.ID,
			FromLocationID: fromLoc.ID,
			ToLocationID:   toLoc.ID,
			Quantity:       decimal.NewFromInt(6),
		})
		require.NoError(t, err)

		assert.Equal(t, "TRANSFER", resp.Type)
		assert.True(t, from.Quantity.Equal(decimal.NewFromInt(4)))
		assert.True(t, to.Quantity.Equal(decimal.NewFromInt(6)))
		assert.True(t, to.UnitCost.Equal(decimal.NewFromInt(4)))
		f.balanceRepo.AssertNumberOfCalls(t, "SaveWithLock", 2)
	})
}

func TestMovementService_AdjustToTarget(t *testing.T) {
	ctx := context.Background()

	t.Run("records the counted delta", func(t *testing.T) {
		f := newServiceFixture(t)
		item := f.activeProduct(t)
		loc := f.activeLocation(t)
		balance := f.balanceFor(t, item.ID, loc.ID, 10, 1)

		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, item.ID).Return(item, nil)
		f.locationRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, loc.ID).Return(loc, nil)
		f.balanceRepo.On("GetOrCreate", mock.Anything, f.tenantID, item.ID, loc.ID).Return(balance, nil)
		f.balanceRepo.On("SaveWithLock", mock.Anything, balance).Return(nil)
		f.movementRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.AdjustToTarget(ctx, f.actor, AdjustToTargetRequest{
			ItemID:         item.ID,
			LocationID:     loc.ID,
			TargetQuantity: decimal.NewFromInt(7),
		})
		require.NoError(t, err)
		require.NotNil(t, resp)

		assert.Equal(t, "ADJUST", resp.Type)
		assert.True(t, resp.Quantity.Equal(decimal.NewFromInt(3)))
		assert.True(t, balance.Quantity.Equal(decimal.NewFromInt(7)))
	})

	t.Run("matching target writes nothing", func(t *testing.T) {
		f := newServiceFixture(t)
		item := f.activeProduct(t)
		loc := f.activeLocation(t)
		balance := f.balanceFor(t, item.ID, loc.ID, 7, 1)

		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, item.ID).Return(item, nil)
		f.locationRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, loc.ID).Return(loc, nil)
		f.balanceRepo.On("GetOrCreate", mock.Anything, f.tenantID, item.ID, loc.ID).Return(balance, nil)

		resp, err := f.svc.AdjustToTarget(ctx, f.actor, AdjustToTargetRequest{
			ItemID:         item.ID,
			LocationID:     loc.ID,
			TargetQuantity: decimal.NewFromInt(7),
		})
		require.NoError(t, err)
		assert.Nil(t, resp)

		f.balanceRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
		f.movementRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects negative target", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.svc.AdjustToTarget(ctx, f.actor, AdjustToTargetRequest{
			ItemID:         uuid.New(),
			LocationID:     uuid.New(),
			TargetQuantity: decimal.NewFromInt(-1),
		})
		assert.Error(t, err)
	})
}

func TestMovementService_Return(t *testing.T) {
	ctx := context.Background()

	t.Run("records return with reference", func(t *testing.T) {
		f := newServiceFixture(t)
		item := f.activeProduct(t)
		loc := f.activeLocation(t)
		balance := f.balanceFor(t, item.ID, loc.ID, 4, 2)

		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, item.ID).Return(item, nil)
		f.locationRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, loc.ID).Return(loc, nil)
		f.balanceRepo.On("GetOrCreate", mock.Anything, f.tenantID, item.ID, loc.ID).Return(balance, nil)
		f.balanceRepo.On("SaveWithLock", mock.Anything, balance).Return(nil)
		f.movementRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.Return(ctx, f.actor, ReturnRequest{
			ItemID:        item.ID,
			LocationID:    loc.ID,
			Quantity:      decimal.NewFromInt(2),
			ReferenceType: "WORK_ORDER",
			ReferenceID:   "OS0126-0002",
		})
		require.NoError(t, err)

		assert.Equal(t, "RETURN", resp.Type)
		assert.Equal(t, "OS0126-0002", resp.ReferenceID)
		assert.True(t, balance.Quantity.Equal(decimal.NewFromInt(6)))
	})

	t.Run("requires reference id", func(t *testing.T) {
		f := newServiceFixture(t)
		item := f.activeProduct(t)
		loc := f.activeLocation(t)
		balance := f.balanceFor(t, item.ID, loc.ID, 4, 2)

		f.itemRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, item.ID).Return(item, nil)
		f.locationRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, loc.ID).Return(loc, nil)
		f.balanceRepo.On("GetOrCreate", mock.Anything, f.tenantID, item.ID, loc.ID).Return(balance, nil)

		_, err := f.svc.Return(ctx, f.actor, ReturnRequest{
			ItemID:        item.ID,
			LocationID:    loc.ID,
			Quantity:      decimal.NewFromInt(2),
			ReferenceType: "WORK_ORDER",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_REFERENCE", domainErr.Code)
	})
}

func TestMovementService_GetBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("missing balance reads as zero", func(t *testing.T) {
		f := newServiceFixture(t)
		itemID := uuid.New()
		locationID := uuid.New()

		f.balanceRepo.On("FindByItemAndLocation", mock.Anything, f.tenantID, itemID, locationID).Return(nil, nil)

		resp, err := f.svc.GetBalance(ctx, f.actor, itemID, locationID)
		require.NoError(t, err)

		assert.Equal(t, itemID, resp.ItemID)
		assert.Equal(t, locationID, resp.LocationID)
		assert.True(t, resp.Quantity.IsZero())
	})

	t.Run("existing balance", func(t *testing.T) {
		f := newServiceFixture(t)
		balance := f.balanceFor(t, uuid.New(), uuid.New(), 8, 3)

		f.balanceRepo.On("FindByItemAndLocation", mock.Anything, f.tenantID, balance.ItemID, balance.LocationID).Return(balance, nil)

		resp, err := f.svc.GetBalance(ctx, f.actor, balance.ItemID, balance.LocationID)
		require.NoError(t, err)

		assert.True(t, resp.Quantity.Equal(decimal.NewFromInt(8)))
		assert.True(t, resp.TotalValue.Equal(decimal.NewFromInt(24)))
	})
}

func TestMovementService_GetMovement_NotFound(t *testing.T) {
	f := newServiceFixture(t)
	id := uuid.New()
	f.movementRepo.On("FindByIDForTenant", mock.Anything, f.tenantID, id).Return(nil, nil)

	_, err := f.svc.GetMovement(context.Background(), f.actor, id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
