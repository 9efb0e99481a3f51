package workorder

import (
	"context"

	"github.com/fieldserv/backend/internal/domain/catalog"
	"github.com/fieldserv/backend/internal/domain/identity"
	"github.com/fieldserv/backend/internal/domain/inventory"
	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/fieldserv/backend/internal/domain/workorder"
	"github.com/google/uuid"
)

// LineService handles work order lines and their coupling to the stock
// ledger. A MATERIAL line backed by a stockable item consumes stock when
// added and releases it when deleted or returned; the line write and the
// movement always commit in the same transaction.
type LineService struct {
	scope     TransactionScope
	orderRepo workorder.WorkOrderRepository
	lineRepo  workorder.WorkOrderLineRepository
	itemRepo  catalog.CatalogItemRepository
	ledger    *inventory.LedgerService
}

// NewLineService creates a new LineService
func NewLineService(
	scope TransactionScope,
	orderRepo workorder.WorkOrderRepository,
	lineRepo workorder.WorkOrderLineRepository,
	itemRepo catalog.CatalogItemRepository,
) *LineService {
	return &LineService{
		scope:     scope,
		orderRepo: orderRepo,
		lineRepo:  lineRepo,
		itemRepo:  itemRepo,
		ledger:    inventory.NewLedgerService(),
	}
}

// AddLine adds a line to an editable work order. For a MATERIAL line backed
// by a stockable catalog item the stock-out happens first: insufficient stock
// surfaces to the caller and the line is never created. The movement id is
// stored on the line and the order totals are recomputed, all in one
// transaction.
func (s *LineService) AddLine(ctx context.Context, actor identity.Actor, workOrderID uuid.UUID, req AddLineRequest) (*LineResponse, error) {
	if err := actor.Require(actor.Role.CanEditWorkOrders()); err != nil {
		return nil, err
	}

	kind := workorder.LineKind(req.Kind)

	var item *catalog.CatalogItem
	if req.CatalogItemID != nil {
		found, err := s.itemRepo.FindByIDForTenant(ctx, actor.TenantID, *req.CatalogItemID)
		if err != nil {
			return nil, err
		}
		if found == nil {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Catalog item not found")
		}
		if !found.Active {
			return nil, shared.NewDomainError("ITEM_INACTIVE", "Catalog item is inactive")
		}
		item = found
	}

	consumesStock := kind == workorder.LineKindMaterial && item != nil && item.IsStockable()
	if consumesStock && req.LocationID == nil {
		return nil, shared.NewDomainError("LOCATION_REQUIRED", "Stock-backed material lines require a source location")
	}

	var line *workorder.WorkOrderLine
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := s.editableOrder(ctx, repos, actor.TenantID, workOrderID)
		if err != nil {
			return err
		}

		unit := req.Unit
		unitPrice := req.UnitPrice
		unitCost := req.UnitCost
		if item != nil {
			if unit == "" {
				unit = item.Unit
			}
			if unitPrice.IsZero() {
				unitPrice = item.SalePrice
			}
			// Catalog base cost wins over the caller-supplied cost
			unitCost = item.BaseCost
		}

		line, err = workorder.NewWorkOrderLine(actor.TenantID, order.ID, kind, req.Name, req.Quantity, unit, unitPrice, unitCost)
		if err != nil {
			return err
		}
		if item != nil {
			line.LinkCatalogItem(item.ID, req.LocationID)
		}

		if consumesStock {
			balance, err := repos.BalanceRepo().FindByItemAndLocation(ctx, actor.TenantID, item.ID, *req.LocationID)
			if err != nil {
				return err
			}
			if balance == nil {
				return shared.ErrInsufficientStock
			}

			movement, err := s.ledger.ApplyOut(balance, req.Quantity, inventory.MovementContext{
				Reason:        inventory.ReasonWorkOrderConsumption,
				ReferenceType: inventory.ReferenceTypeWorkOrder,
				ReferenceID:   order.ID.String(),
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
			if err := line.LinkMovement(movement.ID); err != nil {
				return err
			}
			// The ledger's valuation cost is what the order actually consumed
			line.UnitCost = movement.UnitCost
			line.CostTotal = line.Quantity.Mul(movement.UnitCost).Round(2)
		}

		if err := repos.LineRepo().Save(ctx, line); err != nil {
			return err
		}

		return s.recalculateOrder(ctx, repos, order)
	})
	if err != nil {
		return nil, err
	}

	resp := ToLineResponse(line)
	return &resp, nil
}

// UpdateLine updates a line's pricing and recomputes line and order totals.
// For stock-backed lines the quantity is frozen to the consumed amount;
// material corrections go through ReturnLine or a new line.
func (s *LineService) UpdateLine(ctx context.Context, actor identity.Actor, workOrderID, lineID uuid.UUID, req UpdateLineRequest) (*LineResponse, error) {
	if err := actor.Require(actor.Role.CanEditWorkOrders()); err != nil {
		return nil, err
	}

	var line *workorder.WorkOrderLine
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := s.editableOrder(ctx, repos, actor.TenantID, workOrderID)
		if err != nil {
			return err
		}

		line, err = s.lineOnOrder(ctx, repos, actor.TenantID, workOrderID, lineID)
		if err != nil {
			return err
		}

		if err := line.UpdatePricing(req.Quantity, req.UnitPrice, req.UnitCost); err != nil {
			return err
		}
		if err := repos.LineRepo().Save(ctx, line); err != nil {
			return err
		}

		return s.recalculateOrder(ctx, repos, order)
	})
	if err != nil {
		return nil, err
	}

	resp := ToLineResponse(line)
	return &resp, nil
}

// DeleteLine removes a line. When the line carries a movement, deletion
// generates a compensating RETURN movement for the unreturned remainder so
// the consumed stock goes back to its source location.
func (s *LineService) DeleteLine(ctx context.Context, actor identity.Actor, workOrderID, lineID uuid.UUID) error {
	if err := actor.Require(actor.Role.CanEditWorkOrders()); err != nil {
		return err
	}

	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := s.editableOrder(ctx, repos, actor.TenantID, workOrderID)
		if err != nil {
			return err
		}

		line, err := s.lineOnOrder(ctx, repos, actor.TenantID, workOrderID, lineID)
		if err != nil {
			return err
		}

		if line.HasMovement() && line.LocationID != nil && line.CatalogItemID != nil {
			remaining := line.ReturnableQuantity()
			if remaining.IsPositive() {
				balance, err := repos.BalanceRepo().GetOrCreate(ctx, actor.TenantID, *line.CatalogItemID, *line.LocationID)
				if err != nil {
					return err
				}

				movement, err := s.ledger.ApplyReturn(balance, remaining, inventory.MovementContext{
					Reason:        inventory.ReasonLineDeleted,
					ReferenceType: inventory.ReferenceTypeWorkOrder,
					ReferenceID:   order.ID.String(),
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
		}

		if err := repos.LineRepo().Delete(ctx, line.ID); err != nil {
			return err
		}

		return s.recalculateOrder(ctx, repos, order)
	})
}

// ReturnLine returns part or all of a material line's stock. The return is a
// new RETURN movement back-referencing the work order; the original line and
// its movement are untouched except for the cumulative returned quantity.
func (s *LineService) ReturnLine(ctx context.Context, actor identity.Actor, workOrderID, lineID uuid.UUID, req ReturnLineRequest) (*LineResponse, error) {
	if err := actor.Require(actor.Role.CanEditWorkOrders()); err != nil {
		return nil, err
	}

	var line *workorder.WorkOrderLine
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByIDForTenant(ctx, actor.TenantID, workOrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return shared.ErrNotFound
		}

		line, err = s.lineOnOrder(ctx, repos, actor.TenantID, workOrderID, lineID)
		if err != nil {
			return err
		}
		if !line.HasMovement() || line.CatalogItemID == nil || line.LocationID == nil {
			return shared.NewDomainError("LINE_NOT_RETURNABLE", "Line has no stock movement to return against")
		}

		// RecordReturn enforces the cumulative cap before any ledger write
		if err := line.RecordReturn(req.Quantity); err != nil {
			return err
		}

		balance, err := repos.BalanceRepo().GetOrCreate(ctx, actor.TenantID, *line.CatalogItemID, *line.LocationID)
		if err != nil {
			return err
		}

		movement, err := s.ledger.ApplyReturn(balance, req.Quantity, inventory.MovementContext{
			Reason:        inventory.ReasonWorkOrderReturn,
			ReferenceType: inventory.ReferenceTypeWorkOrder,
			ReferenceID:   order.ID.String(),
			Notes:         req.Notes,
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
		return repos.LineRepo().Save(ctx, line)
	})
	if err != nil {
		return nil, err
	}

	resp := ToLineResponse(line)
	return &resp, nil
}

func (s *LineService) editableOrder(ctx context.Context, repos TransactionalRepositories, tenantID, workOrderID uuid.UUID) (*workorder.WorkOrder, error) {
	order, err := repos.OrderRepo().FindByIDForTenant(ctx, tenantID, workOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.ErrNotFound
	}
	if !order.IsEditable() {
		return nil, shared.NewDomainError("INVALID_STATE", "Work order can no longer be edited")
	}
	return order, nil
}

func (s *LineService) lineOnOrder(ctx context.Context, repos TransactionalRepositories, tenantID, workOrderID, lineID uuid.UUID) (*workorder.WorkOrderLine, error) {
	line, err := repos.LineRepo().FindByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil || line.TenantID != tenantID || line.WorkOrderID != workOrderID {
		return nil, shared.ErrNotFound
	}
	return line, nil
}

func (s *LineService) recalculateOrder(ctx context.Context, repos TransactionalRepositories, order *workorder.WorkOrder) error {
	lines, err := repos.LineRepo().FindByWorkOrder(ctx, order.TenantID, order.ID)
	if err != nil {
		return err
	}
	order.RecalculateTotals(lines)
	return repos.OrderRepo().SaveWithLock(ctx, order)
}
