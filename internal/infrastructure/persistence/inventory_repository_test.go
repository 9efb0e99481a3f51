package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/fieldserv/backend/internal/domain/inventory"
	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&inventory.StockBalance{}, &inventory.Movement{})
	require.NoError(t, err)

	// Mirror the tenant-scoped unique index the migrations create
	err = db.Exec("CREATE UNIQUE INDEX idx_stock_balance_item_location ON stock_balances (tenant_id, item_id, location_id)").Error
	require.NoError(t, err)

	return db
}

// ============================================================
// StockBalanceRepository
// ============================================================

func TestGormStockBalanceRepository_GetOrCreate(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewGormStockBalanceRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	itemID := uuid.New()
	locationID := uuid.New()

	t.Run("creates zeroed balance when none exists", func(t *testing.T) {
		balance, err := repo.GetOrCreate(ctx, tenantID, itemID, locationID)
		require.NoError(t, err)
		require.NotNil(t, balance)

		assert.Equal(t, itemID, balance.ItemID)
		assert.Equal(t, locationID, balance.LocationID)
		assert.True(t, balance.Quantity.IsZero())
		assert.True(t, balance.UnitCost.IsZero())
	})

	t.Run("returns existing balance on second call", func(t *testing.T) {
		first, err := repo.GetOrCreate(ctx, tenantID, itemID, locationID)
		require.NoError(t, err)

		second, err := repo.GetOrCreate(ctx, tenantID, itemID, locationID)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)

		count, err := repo.CountForTenant(ctx, tenantID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("recovers when the row appears between read and insert", func(t *testing.T) {
		raceItemID := uuid.New()
		existing, err := repo.GetOrCreate(ctx, tenantID, raceItemID, locationID)
		require.NoError(t, err)

		// A second insert conflicts on the tenant-scoped unique index and
		// must translate to gorm.ErrDuplicatedKey, which GetOrCreate
		// resolves by re-reading
		duplicate, err := inventory.NewStockBalance(tenantID, raceItemID, locationID)
		require.NoError(t, err)
		insertErr := repo.db.WithContext(ctx).Create(duplicate).Error
		require.Error(t, insertErr)
		assert.ErrorIs(t, insertErr, gorm.ErrDuplicatedKey)

		resolved, err := repo.GetOrCreate(ctx, tenantID, raceItemID, locationID)
		require.NoError(t, err)
		assert.Equal(t, existing.ID, resolved.ID)
	})

	t.Run("same item and location is allowed for another tenant", func(t *testing.T) {
		otherTenant := uuid.New()
		balance, err := repo.GetOrCreate(ctx, otherTenant, itemID, locationID)
		require.NoError(t, err)
		require.NotNil(t, balance)
		assert.Equal(t, otherTenant, balance.TenantID)
	})
}

func TestGormStockBalanceRepository_FindByItemAndLocation(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewGormStockBalanceRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	itemID := uuid.New()
	locationID := uuid.New()

	t.Run("returns nil when no balance exists", func(t *testing.T) {
		balance, err := repo.FindByItemAndLocation(ctx, tenantID, itemID, locationID)
		require.NoError(t, err)
		assert.Nil(t, balance)
	})

	t.Run("finds stored balance", func(t *testing.T) {
		created, err := repo.GetOrCreate(ctx, tenantID, itemID, locationID)
		require.NoError(t, err)

		found, err := repo.FindByItemAndLocation(ctx, tenantID, itemID, locationID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("does not leak across tenants", func(t *testing.T) {
		found, err := repo.FindByItemAndLocation(ctx, uuid.New(), itemID, locationID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestGormStockBalanceRepository_SaveWithLock(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewGormStockBalanceRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	itemID := uuid.New()
	locationID := uuid.New()

	t.Run("persists version-incremented mutation", func(t *testing.T) {
		balance, err := repo.GetOrCreate(ctx, tenantID, itemID, locationID)
		require.NoError(t, err)

		err = balance.Increase(decimal.NewFromInt(10), decimal.NewFromFloat(4.5))
		require.NoError(t, err)

		err = repo.SaveWithLock(ctx, balance)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, balance.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.Quantity.Equal(decimal.NewFromInt(10)))
		assert.True(t, found.UnitCost.Equal(decimal.NewFromFloat(4.5)))
		assert.Equal(t, balance.Version, found.Version)
	})

	t.Run("rejects stale version", func(t *testing.T) {
		balance, err := repo.GetOrCreate(ctx, tenantID, uuid.New(), locationID)
		require.NoError(t, err)

		// Two in-memory copies of the same row
		stale, err := repo.FindByID(ctx, balance.ID)
		require.NoError(t, err)

		require.NoError(t, balance.Increase(decimal.NewFromInt(5), decimal.NewFromInt(2)))
		require.NoError(t, repo.SaveWithLock(ctx, balance))

		require.NoError(t, stale.Increase(decimal.NewFromInt(3), decimal.NewFromInt(2)))
		err = repo.SaveWithLock(ctx, stale)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_FAILED", domainErr.Code)
	})
}

func TestGormStockBalanceRepository_SumQuantityByItem(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewGormStockBalanceRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	itemID := uuid.New()

	// Same item stocked at two locations
	for _, qty := range []int64{10, 7} {
		balance, err := repo.GetOrCreate(ctx, tenantID, itemID, uuid.New())
		require.NoError(t, err)
		require.NoError(t, balance.Increase(decimal.NewFromInt(qty), decimal.NewFromInt(3)))
		require.NoError(t, repo.SaveWithLock(ctx, balance))
	}

	// Another tenant's stock must not count
	other, err := repo.GetOrCreate(ctx, uuid.New(), itemID, uuid.New())
	require.NoError(t, err)
	require.NoError(t, other.Increase(decimal.NewFromInt(100), decimal.NewFromInt(3)))
	require.NoError(t, repo.SaveWithLock(ctx, other))

	total, err := repo.SumQuantityByItem(ctx, tenantID, itemID)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(17)), "expected 17, got %s", total)
}

func TestGormStockBalanceRepository_FindByLocation(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewGormStockBalanceRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	locationID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := repo.GetOrCreate(ctx, tenantID, uuid.New(), locationID)
		require.NoError(t, err)
	}
	_, err := repo.GetOrCreate(ctx, tenantID, uuid.New(), uuid.New())
	require.NoError(t, err)

	balances, err := repo.FindByLocation(ctx, tenantID, locationID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, balances, 3)
}

func TestGormStockBalanceRepository_HasStockFilter(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewGormStockBalanceRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	locationID := uuid.New()

	stocked, err := repo.GetOrCreate(ctx, tenantID, uuid.New(), locationID)
	require.NoError(t, err)
	require.NoError(t, stocked.Increase(decimal.NewFromInt(4), decimal.NewFromInt(1)))
	require.NoError(t, repo.SaveWithLock(ctx, stocked))

	// Zeroed balance should be excluded by has_stock
	_, err = repo.GetOrCreate(ctx, tenantID, uuid.New(), locationID)
	require.NoError(t, err)

	filter := shared.DefaultFilter()
	filter.Filters = map[string]interface{}{"has_stock": true}

	balances, err := repo.FindAllForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, stocked.ID, balances[0].ID)
}

// ============================================================
// MovementRepository
// ============================================================

func storedMovement(t *testing.T, repo *GormMovementRepository, tenantID, itemID uuid.UUID, movType inventory.MovementType, reason inventory.ReasonCode, occurredAt time.Time) *inventory.Movement {
	t.Helper()

	var from, to *uuid.UUID
	locID := uuid.New()
	switch movType {
	case inventory.MovementTypeIn, inventory.MovementTypeReturn:
		to = &locID
	case inventory.MovementTypeOut:
		from = &locID
	default:
		from = &locID
		otherID := uuid.New()
		to = &otherID
	}

	movement, err := inventory.NewMovement(tenantID, itemID, movType, from, to,
		decimal.NewFromInt(2), decimal.NewFromInt(5), reason)
	require.NoError(t, err)
	movement.OccurredAt = occurredAt

	require.NoError(t, repo.Create(context.Background(), movement))
	return movement
}

func TestGormMovementRepository_CreateAndFind(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewGormMovementRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	itemID := uuid.New()

	movement := storedMovement(t, repo, tenantID, itemID,
		inventory.MovementTypeIn, inventory.ReasonPurchaseReceived, time.Now())

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, movement.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, movement.ID, found.ID)
		assert.Equal(t, inventory.MovementTypeIn, found.Type)
		assert.True(t, found.Quantity.Equal(decimal.NewFromInt(2)))
	})

	t.Run("returns nil for unknown id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("scopes lookup to tenant", func(t *testing.T) {
		found, err := repo.FindByIDForTenant(ctx, uuid.New(), movement.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestGormMovementRepository_FindByReference(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewGormMovementRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	orderID := uuid.New().String()
	base := time.Now().Add(-time.Hour)

	// Two movements against the same work order, oldest first expected back
	second := storedMovement(t, repo, tenantID, uuid.New(),
		inventory.MovementTypeReturn, inventory.ReasonWorkOrderReturn, base.Add(10*time.Minute))
	second.WithReference(inventory.ReferenceTypeWorkOrder, orderID)
	require.NoError(t, db.Save(second).Error)

	first := storedMovement(t, repo, tenantID, uuid.New(),
		inventory.MovementTypeOut, inventory.ReasonWorkOrderConsumption, base)
	first.WithReference(inventory.ReferenceTypeWorkOrder, orderID)
	require.NoError(t, db.Save(first).Error)

	// Unrelated document
	storedMovement(t, repo, tenantID, uuid.New(),
		inventory.MovementTypeIn, inventory.ReasonPurchaseReceived, base)

	movements, err := repo.FindByReference(ctx, tenantID, inventory.ReferenceTypeWorkOrder, orderID)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, first.ID, movements[0].ID)
	assert.Equal(t, second.ID, movements[1].ID)
}

func TestGormMovementRepository_Filters(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewGormMovementRepository(db)
	ctx := context.Background()

	tenantID := uuid.New()
	itemID := uuid.New()
	now := time.Now()

	storedMovement(t, repo, tenantID, itemID, inventory.MovementTypeIn, inventory.ReasonPurchaseReceived, now.Add(-2*time.Hour))
	storedMovement(t, repo, tenantID, itemID, inventory.MovementTypeOut, inventory.ReasonWorkOrderConsumption, now.Add(-time.Hour))
	storedMovement(t, repo, tenantID, uuid.New(), inventory.MovementTypeIn, inventory.ReasonPurchaseReceived, now)

	t.Run("filters by type", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters = map[string]interface{}{"type": string(inventory.MovementTypeIn)}

		movements, err := repo.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Len(t, movements, 2)
	})

	t.Run("filters by item", func(t *testing.T) {
		movements, err := repo.FindByItem(ctx, tenantID, itemID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Len(t, movements, 2)
	})

	t.Run("filters by time window", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters = map[string]interface{}{
			"occurred_after":  now.Add(-90 * time.Minute),
			"occurred_before": now.Add(-30 * time.Minute),
		}

		movements, err := repo.FindAllForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, inventory.MovementTypeOut, movements[0].Type)
	})

	t.Run("counts with filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters = map[string]interface{}{"reason": string(inventory.ReasonPurchaseReceived)}

		count, err := repo.CountForTenant(ctx, tenantID, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}
