package workorder

import (
	"context"
	"time"

	"github.com/fieldserv/backend/internal/domain/identity"
	"github.com/fieldserv/backend/internal/domain/shared"
	"github.com/fieldserv/backend/internal/domain/workorder"
	"github.com/google/uuid"
)

// WorkOrderService handles work order and quote lifecycle operations
type WorkOrderService struct {
	scope     TransactionScope
	orderRepo workorder.WorkOrderRepository
	lineRepo  workorder.WorkOrderLineRepository
}

// NewWorkOrderService creates a new WorkOrderService
func NewWorkOrderService(
	scope TransactionScope,
	orderRepo workorder.WorkOrderRepository,
	lineRepo workorder.WorkOrderLineRepository,
) *WorkOrderService {
	return &WorkOrderService{
		scope:     scope,
		orderRepo: orderRepo,
		lineRepo:  lineRepo,
	}
}

// Create creates a new work order or quote. The document number is drawn from
// the per-tenant counter inside the creation transaction so two concurrent
// creations can never share a number.
func (s *WorkOrderService) Create(ctx context.Context, actor identity.Actor, req CreateWorkOrderRequest) (*WorkOrderResponse, error) {
	if err := actor.Require(actor.Role.CanEditWorkOrders()); err != nil {
		return nil, err
	}
	if req.TaxRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	docType := workorder.DocumentType(req.DocumentType)

	var order *workorder.WorkOrder
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sequence, err := repos.OrderRepo().NextDocumentSequence(ctx, actor.TenantID, docType)
		if err != nil {
			return err
		}

		now := time.Now()
		number := workorder.FormatDocumentNumber(docType, now, sequence)
		order, err = workorder.NewWorkOrder(actor.TenantID, docType, number, sequence, req.ClientID, req.Title)
		if err != nil {
			return err
		}
		order.CreatedBy = &actor.UserID
		order.Description = req.Description
		order.AssetID = req.AssetID
		order.TaxRate = req.TaxRate
		if req.Priority != "" {
			if err := order.SetPriority(workorder.Priority(req.Priority)); err != nil {
				return err
			}
		}
		if req.TechnicianID != nil {
			if err := order.AssignTechnician(*req.TechnicianID); err != nil {
				return err
			}
		}

		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	resp := ToWorkOrderResponse(order)
	return &resp, nil
}

// Get returns one work order by id
func (s *WorkOrderService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*WorkOrderResponse, error) {
	order, err := s.findForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToWorkOrderResponse(order)
	return &resp, nil
}

// GetByDocumentNumber returns one work order by its document number
func (s *WorkOrderService) GetByDocumentNumber(ctx context.Context, actor identity.Actor, number string) (*WorkOrderResponse, error) {
	order, err := s.orderRepo.FindByDocumentNumber(ctx, actor.TenantID, number)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.ErrNotFound
	}
	resp := ToWorkOrderResponse(order)
	return &resp, nil
}

// List returns work orders for the tenant
func (s *WorkOrderService) List(ctx context.Context, actor identity.Actor, filter WorkOrderListFilter) (*shared.Paginated[WorkOrderResponse], error) {
	f := toWorkOrderFilter(filter)

	orders, err := s.orderRepo.FindAllForTenant(ctx, actor.TenantID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, actor.TenantID, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToWorkOrderResponses(orders), total, f.Page, f.PageSize)
	return &result, nil
}

// Update updates the editable header fields of a work order
func (s *WorkOrderService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateWorkOrderRequest) (*WorkOrderResponse, error) {
	if err := actor.Require(actor.Role.CanEditWorkOrders()); err != nil {
		return nil, err
	}

	order, err := s.findForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if !order.IsEditable() {
		return nil, shared.NewDomainError("INVALID_STATE", "Work order can no longer be edited")
	}

	if req.Title != "" {
		order.Title = req.Title
	}
	if req.Description != "" {
		order.Description = req.Description
	}
	if req.Priority != "" {
		if err := order.SetPriority(workorder.Priority(req.Priority)); err != nil {
			return nil, err
		}
	} else {
		order.UpdatedAt = time.Now()
		order.IncrementVersion()
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	resp := ToWorkOrderResponse(order)
	return &resp, nil
}

// Transition moves the order to a new lifecycle state
func (s *WorkOrderService) Transition(ctx context.Context, actor identity.Actor, id uuid.UUID, req TransitionRequest) (*WorkOrderResponse, error) {
	if err := actor.Require(actor.Role.CanEditWorkOrders()); err != nil {
		return nil, err
	}

	order, err := s.findForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := order.TransitionTo(workorder.Status(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	resp := ToWorkOrderResponse(order)
	return &resp, nil
}

// Cancel cancels the order with a reason
func (s *WorkOrderService) Cancel(ctx context.Context, actor identity.Actor, id uuid.UUID, req CancelRequest) (*WorkOrderResponse, error) {
	if err := actor.Require(actor.Role.CanEditWorkOrders()); err != nil {
		return nil, err
	}

	order, err := s.findForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	resp := ToWorkOrderResponse(order)
	return &resp, nil
}

// AssignTechnician assigns the order to a technician
func (s *WorkOrderService) AssignTechnician(ctx context.Context, actor identity.Actor, id uuid.UUID, req AssignTechnicianRequest) (*WorkOrderResponse, error) {
	if err := actor.Require(actor.Role.CanEditWorkOrders()); err != nil {
		return nil, err
	}

	order, err := s.findForTenant(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	if err := order.AssignTechnician(req.TechnicianID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	resp := ToWorkOrderResponse(order)
	return &resp, nil
}

// Lines returns the lines of a work order
func (s *WorkOrderService) Lines(ctx context.Context, actor identity.Actor, id uuid.UUID) ([]LineResponse, error) {
	if _, err := s.findForTenant(ctx, actor.TenantID, id); err != nil {
		return nil, err
	}
	lines, err := s.lineRepo.FindByWorkOrder(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}
	return ToLineResponses(lines), nil
}

func (s *WorkOrderService) findForTenant(ctx context.Context, tenantID, id uuid.UUID) (*workorder.WorkOrder, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func toWorkOrderFilter(filter WorkOrderListFilter) shared.Filter {
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
	if filter.DocumentType != "" {
		f.Filters["document_type"] = filter.DocumentType
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.ClientID != nil {
		f.Filters["client_id"] = *filter.ClientID
	}
	if filter.TechnicianID != nil {
		f.Filters["technician_id"] = *filter.TechnicianID
	}
	return f
}
