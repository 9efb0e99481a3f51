package handler

import (
	workorderapp "github.com/fieldserv/backend/internal/application/workorder"
	"github.com/gin-gonic/gin"
)

// WorkOrderHandler handles work order, line and payment endpoints
type WorkOrderHandler struct {
	BaseHandler
	orderService   *workorderapp.WorkOrderService
	lineService    *workorderapp.LineService
	paymentService *workorderapp.PaymentService
}

// NewWorkOrderHandler creates a new WorkOrderHandler
func NewWorkOrderHandler(
	orderService *workorderapp.WorkOrderService,
	lineService *workorderapp.LineService,
	paymentService *workorderapp.PaymentService,
) *WorkOrderHandler {
	return &WorkOrderHandler{
		orderService:   orderService,
		lineService:    lineService,
		paymentService: paymentService,
	}
}

// Create creates a new work order or quote
// POST /api/v1/work-orders
func (h *WorkOrderHandler) Create(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req workorderapp.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.orderService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get returns a work order by ID
// GET /api/v1/work-orders/:id
func (h *WorkOrderHandler) Get(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	resp, err := h.orderService.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByDocumentNumber returns a work order by its document number
// GET /api/v1/work-orders/number/:number
func (h *WorkOrderHandler) GetByDocumentNumber(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.orderService.GetByDocumentNumber(c.Request.Context(), actor, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List lists work orders with pagination and filtering
// GET /api/v1/work-orders
func (h *WorkOrderHandler) List(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter workorderapp.WorkOrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update updates an editable work order's details
// PUT /api/v1/work-orders/:id
func (h *WorkOrderHandler) Update(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	var req workorderapp.UpdateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.orderService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Transition moves a work order to a new status
// POST /api/v1/work-orders/:id/transition
func (h *WorkOrderHandler) Transition(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	var req workorderapp.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.orderService.Transition(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels a work order
// POST /api/v1/work-orders/:id/cancel
func (h *WorkOrderHandler) Cancel(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	var req workorderapp.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.orderService.Cancel(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AssignTechnician assigns a technician to a work order
// PUT /api/v1/work-orders/:id/technician
func (h *WorkOrderHandler) AssignTechnician(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	var req workorderapp.AssignTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.orderService.AssignTechnician(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Lines lists a work order's lines
// GET /api/v1/work-orders/:id/lines
func (h *WorkOrderHandler) Lines(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	resp, err := h.orderService.Lines(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddLine adds a line to a work order. MATERIAL lines backed by a stockable
// catalog item consume stock atomically with the line write.
// POST /api/v1/work-orders/:id/lines
func (h *WorkOrderHandler) AddLine(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	var req workorderapp.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.lineService.AddLine(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// UpdateLine updates a line's pricing
// PUT /api/v1/work-orders/:id/lines/:lineId
func (h *WorkOrderHandler) UpdateLine(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}
	lineID, err := parseIDParam(c, "lineId")
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req workorderapp.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.lineService.UpdateLine(c.Request.Context(), actor, id, lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteLine removes a line, returning any unconsumed stock
// DELETE /api/v1/work-orders/:id/lines/:lineId
func (h *WorkOrderHandler) DeleteLine(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}
	lineID, err := parseIDParam(c, "lineId")
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	if err := h.lineService.DeleteLine(c.Request.Context(), actor, id, lineID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ReturnLine returns part of a consumed material line to stock
// POST /api/v1/work-orders/:id/lines/:lineId/return
func (h *WorkOrderHandler) ReturnLine(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}
	lineID, err := parseIDParam(c, "lineId")
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req workorderapp.ReturnLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.lineService.ReturnLine(c.Request.Context(), actor, id, lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RegisterPayment registers a payment against a work order
// POST /api/v1/work-orders/:id/payments
func (h *WorkOrderHandler) RegisterPayment(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	var req workorderapp.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.paymentService.RegisterPayment(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListPayments lists payments registered against a work order
// GET /api/v1/work-orders/:id/payments
func (h *WorkOrderHandler) ListPayments(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	resp, err := h.paymentService.ListPayments(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// OutstandingAmount returns the unpaid remainder of a work order's total
// GET /api/v1/work-orders/:id/outstanding
func (h *WorkOrderHandler) OutstandingAmount(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	outstanding, err := h.paymentService.OutstandingAmount(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"work_order_id": id, "outstanding_amount": outstanding})
}

// Reconcile recomputes a work order's paid amount from its payment records
// POST /api/v1/work-orders/:id/reconcile
func (h *WorkOrderHandler) Reconcile(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid work order ID format")
		return
	}

	resp, err := h.paymentService.Reconcile(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
