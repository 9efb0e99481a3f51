package purchasing

import (
	"context"

	"github.com/fieldserv/backend/internal/domain/catalog"
	"github.com/fieldserv/backend/internal/domain/identity"
	"github.com/fieldserv/backend/internal/domain/inventory"
	"github.com/fieldserv/backend/internal/domain/purchasing"
	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseService handles purchase orders and their receiving. Receiving is a
// single transaction: line updates, stock-in movements and the status flip to
// RECEIVED either all commit or none do.
type PurchaseService struct {
	scope        TransactionScope
	purchaseRepo purchasing.PurchaseRepository
	itemRepo     catalog.CatalogItemRepository
	locationRepo catalog.LocationRepository
	ledger       *inventory.LedgerService
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(
	scope TransactionScope,
	purchaseRepo purchasing.PurchaseRepository,
	itemRepo catalog.CatalogItemRepository,
	locationRepo catalog.LocationRepository,
) *PurchaseService {
	return &PurchaseService{
		scope:        scope,
		purchaseRepo: purchaseRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		ledger:       inventory.NewLedgerService(),
	}
}

// Create creates a pending purchase order with its lines
func (s *PurchaseService) Create(ctx context.Context, actor identity.Actor, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	if err := actor.Require(actor.Role.CanReceivePurchases()); err != nil {
		return nil, err
	}

	location, err := s.locationRepo.FindByIDForTenant(ctx, actor.TenantID, req.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, shared.NewDomainError("LOCATION_NOT_FOUND", "Location not found")
	}
	if !location.Active {
		return nil, shared.NewDomainError("LOCATION_INACTIVE", "Location is inactive")
	}

	purchase, err := purchasing.NewPurchase(actor.TenantID, req.SupplierID, req.LocationID, req.Reference)
	if err != nil {
		return nil, err
	}
	purchase.SetCreatedBy(actor.UserID)
	purchase.Notes = req.Notes

	for _, line := range req.Items {
		item, err := s.itemRepo.FindByIDForTenant(ctx, actor.TenantID, line.CatalogItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Catalog item not found")
		}
		if !item.IsStockable() {
			return nil, shared.NewDomainError("ITEM_NOT_STOCKABLE", "Only products can be purchased into stock")
		}
		if _, err := purchase.AddItem(line.CatalogItemID, line.Name, line.Quantity, line.EstimatedCost); err != nil {
			return nil, err
		}
	}

	if err := s.purchaseRepo.Save(ctx, purchase); err != nil {
		return nil, err
	}

	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// Get returns one purchase (with items) by id
func (s *PurchaseService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.findForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// List returns purchases for the tenant
func (s *PurchaseService) List(ctx context.Context, actor identity.Actor, filter PurchaseListFilter) (*shared.Paginated[PurchaseResponse], error) {
	f := toPurchaseFilter(filter)

	purchases, err := s.purchaseRepo.FindAllForTenant(ctx, actor.TenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.purchaseRepo.CountForTenant(ctx, actor.TenantID, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToPurchaseResponses(purchases), total, f.Page, f.PageSize)
	return &result, nil
}

// Receive receives a pending purchase. Per line: the received quantity and
// real cost are written onto the purchase, and a stock-in movement is applied
// at the purchase's location for every line with quantity > 0. The whole
// receive runs in one transaction; the first failing line aborts everything.
func (s *PurchaseService) Receive(ctx context.Context, actor identity.Actor, id uuid.UUID, req ReceivePurchaseRequest) (*PurchaseResponse, error) {
	if err := actor.Require(actor.Role.CanReceivePurchases()); err != nil {
		return nil, err
	}

	var purchase *purchasing.Purchase
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		purchase, err = repos.PurchaseRepo().FindByIDForTenant(ctx, actor.TenantID, id)
		if err != nil {
			return err
		}
		if purchase == nil {
			return shared.ErrNotFound
		}

		received := make([]purchasing.ReceivedLine, 0, len(req.Items))
		for _, line := range req.Items {
			received = append(received, purchasing.ReceivedLine{
				ItemID:   line.ItemID,
				Quantity: line.Quantity,
				RealCost: line.RealCost,
			})
		}

		// Validates status and lines, writes quantities/costs, flips to RECEIVED
		if err := purchase.Receive(received, actor.UserID); err != nil {
			return err
		}

		for i := range purchase.Items {
			item := &purchase.Items[i]
			if !item.ReceivedQuantity.IsPositive() {
				continue
			}

			balance, err := repos.BalanceRepo().GetOrCreate(ctx, actor.TenantID, item.CatalogItemID, purchase.LocationID)
			if err != nil {
				return err
			}

			movement, err := s.ledger.ApplyIn(balance, item.ReceivedQuantity, item.RealCost, inventory.MovementContext{
				Reason:        inventory.ReasonPurchaseReceived,
				ReferenceType: inventory.ReferenceTypePurchase,
				ReferenceID:   purchase.ID.String(),
				ActorID:       actor.UserID,
			})
			if err != nil {
				return err
			}

			if err := repos.BalanceRepo().SaveWithLock(ctx, balance); err != nil {
				return err
			}
			if err := repos.MovementRepo().Create(ctx, movement); err != nil {
				return err
			}
		}

		return repos.PurchaseRepo().SaveWithLock(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

// Cancel cancels a pending purchase
func (s *PurchaseService) Cancel(ctx context.Context, actor identity.Actor, id uuid.UUID) (*PurchaseResponse, error) {
	if err := actor.Require(actor.Role.CanReceivePurchases()); err != nil {
		return nil, err
	}

	purchase, err := s.findForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := purchase.Cancel(); err != nil {
		return nil, err
	}
	if err := s.purchaseRepo.SaveWithLock(ctx, purchase); err != nil {
		return nil, err
	}

	resp := ToPurchaseResponse(purchase)
	return &resp, nil
}

func (s *PurchaseService) findForTenant(ctx context.Context, tenantID, id uuid.UUID) (*purchasing.Purchase, error) {
	purchase, err := s.purchaseRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, shared.ErrNotFound
	}
	return purchase, nil
}

func toPurchaseFilter(filter PurchaseListFilter) shared.Filter {
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
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.SupplierID != nil {
		f.Filters["supplier_id"] = *filter.SupplierID
	}
	return f
}
