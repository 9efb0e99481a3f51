package catalog

import (
	"context"

	"github.com/fieldserv/backend/internal/domain/catalog"
	"github.com/fieldserv/backend/internal/domain/identity"
	"github.com/fieldserv/backend/internal/domain/inventory"
	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CatalogService handles catalog items and locations
type CatalogService struct {
	itemRepo     catalog.CatalogItemRepository
	locationRepo catalog.LocationRepository
	balanceRepo  inventory.StockBalanceRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	itemRepo catalog.CatalogItemRepository,
	locationRepo catalog.LocationRepository,
	balanceRepo inventory.StockBalanceRepository,
) *CatalogService {
	return &CatalogService{
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		balanceRepo:  balanceRepo,
	}
}

// CreateItem creates a catalog item
func (s *CatalogService) CreateItem(ctx context.Context, actor identity.Actor, req CreateItemRequest) (*ItemResponse, error) {
	if err := actor.Require(actor.Role.CanManageCatalog()); err != nil {
		return nil, err
	}

	item, err := catalog.NewCatalogItem(actor.TenantID, catalog.ItemKind(req.Kind), req.Name, req.Unit)
	if err != nil {
		return nil, err
	}
	item.SetCreatedBy(actor.UserID)

	if err := item.SetPricing(req.BaseCost, req.SalePrice); err != nil {
		return nil, err
	}
	if item.IsStockable() && !req.MinStock.IsZero() {
		if err := item.SetMinStock(req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

// GetItem returns one catalog item by id
func (s *CatalogService) GetItem(ctx context.Context, actor identity.Actor, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.findItem(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// ListItems returns catalog items for the tenant
func (s *CatalogService) ListItems(ctx context.Context, actor identity.Actor, filter ItemListFilter) (*shared.Paginated[ItemResponse], error) {
	f := toItemFilter(filter)

	items, err := s.itemRepo.FindAllForTenant(ctx, actor.TenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.itemRepo.CountForTenant(ctx, actor.TenantID, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToItemResponses(items), total, f.Page, f.PageSize)
	return &result, nil
}

// UpdateItem updates a catalog item's fields
func (s *CatalogService) UpdateItem(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	if err := actor.Require(actor.Role.CanManageCatalog()); err != nil {
		return nil, err
	}

	item, err := s.findItem(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	name := item.Name
	if req.Name != "" {
		name = req.Name
	}
	unit := item.Unit
	if req.Unit != "" {
		unit = req.Unit
	}
	if err := item.Update(name, unit); err != nil {
		return nil, err
	}

	if req.BaseCost != nil || req.SalePrice != nil {
		baseCost := item.BaseCost
		if req.BaseCost != nil {
			baseCost = *req.BaseCost
		}
		salePrice := item.SalePrice
		if req.SalePrice != nil {
			salePrice = *req.SalePrice
		}
		if err := item.SetPricing(baseCost, salePrice); err != nil {
			return nil, err
		}
	}
	if req.MinStock != nil {
		if err := item.SetMinStock(*req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToItemResponse(item)
	return &resp, nil
}

// DeactivateItem soft-deletes a catalog item. Items referenced by movements
// or lines are never removed.
func (s *CatalogService) DeactivateItem(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := actor.Require(actor.Role.CanManageCatalog()); err != nil {
		return err
	}

	item, err := s.findItem(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}
	item.Deactivate()
	return s.itemRepo.Save(ctx, item)
}

// ActivateItem re-enables a deactivated catalog item
func (s *CatalogService) ActivateItem(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := actor.Require(actor.Role.CanManageCatalog()); err != nil {
		return err
	}

	item, err := s.findItem(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}
	item.Activate()
	return s.itemRepo.Save(ctx, item)
}

// ListBelowMinimum returns active products whose total stock across all
// locations is strictly below their minimum stock threshold
func (s *CatalogService) ListBelowMinimum(ctx context.Context, actor identity.Actor) ([]LowStockItem, error) {
	f := shared.DefaultFilter()
	f.PageSize = 1000
	f.Filters["kind"] = string(catalog.ItemKindProduct)
	f.Filters["active"] = true

	items, err := s.itemRepo.FindAllForTenant(ctx, actor.TenantID, f)
	if err != nil {
		return nil, err
	}

	low := make([]LowStockItem, 0)
	for i := range items {
		item := &items[i]
		if item.MinStock.IsZero() {
			continue
		}
		onHand, err := s.balanceRepo.SumQuantityByItem(ctx, actor.TenantID, item.ID)
		if err != nil {
			return nil, err
		}
		if onHand.LessThan(item.MinStock) {
			low = append(low, LowStockItem{
				Item:     ToItemResponse(item),
				OnHand:   onHand,
				MinStock: item.MinStock,
			})
		}
	}
	return low, nil
}

// CreateLocation creates an inventory location
func (s *CatalogService) CreateLocation(ctx context.Context, actor identity.Actor, req CreateLocationRequest) (*LocationResponse, error) {
	if err := actor.Require(actor.Role.CanManageCatalog()); err != nil {
		return nil, err
	}

	location, err := catalog.NewLocation(actor.TenantID, req.Name, catalog.LocationType(req.Type))
	if err != nil {
		return nil, err
	}
	location.SetCreatedBy(actor.UserID)

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	resp := ToLocationResponse(location)
	return &resp, nil
}

// GetLocation returns one location by id
func (s *CatalogService) GetLocation(ctx context.Context, actor identity.Actor, id uuid.UUID) (*LocationResponse, error) {
	location, err := s.findLocation(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToLocationResponse(location)
	return &resp, nil
}

// ListLocations returns locations for the tenant
func (s *CatalogService) ListLocations(ctx context.Context, actor identity.Actor, filter LocationListFilter) (*shared.Paginated[LocationResponse], error) {
	f := toLocationFilter(filter)

	locations, err := s.locationRepo.FindAllForTenant(ctx, actor.TenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.locationRepo.CountForTenant(ctx, actor.TenantID, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToLocationResponses(locations), total, f.Page, f.PageSize)
	return &result, nil
}

// UpdateLocation renames a location
func (s *CatalogService) UpdateLocation(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	if err := actor.Require(actor.Role.CanManageCatalog()); err != nil {
		return nil, err
	}

	location, err := s.findLocation(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		if err := location.Rename(req.Name); err != nil {
			return nil, err
		}
	}
	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	resp := ToLocationResponse(location)
	return &resp, nil
}

// DeactivateLocation soft-deletes a location
func (s *CatalogService) DeactivateLocation(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := actor.Require(actor.Role.CanManageCatalog()); err != nil {
		return err
	}

	location, err := s.findLocation(ctx, actor.TenantID, id)
	if err != nil {
		return err
	}
	location.Deactivate()
	return s.locationRepo.Save(ctx, location)
}

func (s *CatalogService) findItem(ctx context.Context, tenantID, id uuid.UUID) (*catalog.CatalogItem, error) {
	item, err := s.itemRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (s *CatalogService) findLocation(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Location, error) {
	location, err := s.locationRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, shared.ErrNotFound
	}
	return location, nil
}

func toItemFilter(filter ItemListFilter) shared.Filter {
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
	if filter.Search != "" {
		f.Search = filter.Search
	}
	if filter.Kind != "" {
		f.Filters["kind"] = filter.Kind
	}
	if filter.Active != nil {
		f.Filters["active"] = *filter.Active
	}
	return f
}

func toLocationFilter(filter LocationListFilter) shared.Filter {
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
	if filter.Type != "" {
		f.Filters["type"] = filter.Type
	}
	if filter.Active != nil {
		f.Filters["active"] = *filter.Active
	}
	return f
}
