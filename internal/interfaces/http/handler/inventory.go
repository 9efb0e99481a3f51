package handler

import (
	inventoryapp "github.com/fieldserv/backend/internal/application/inventory"
	"github.com/fieldserv/backend/internal/domain/inventory"
	"github.com/gin-gonic/gin"
)

// InventoryHandler handles stock balance and movement endpoints
type InventoryHandler struct {
	BaseHandler
	movementService *inventoryapp.MovementService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(movementService *inventoryapp.MovementService) *InventoryHandler {
	return &InventoryHandler{movementService: movementService}
}

// StockIn records a manual stock entry
// POST /api/v1/inventory/stock-in
func (h *InventoryHandler) StockIn(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.StockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.movementService.StockIn(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// StockOut records a manual stock exit
// POST /api/v1/inventory/stock-out
func (h *InventoryHandler) StockOut(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.StockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.movementService.StockOut(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Transfer moves stock between two locations
// POST /api/v1/inventory/transfer
func (h *InventoryHandler) Transfer(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.movementService.Transfer(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// AdjustToTarget corrects a balance to a counted target quantity.
// A target equal to the current balance is a no-op and returns no movement.
// POST /api/v1/inventory/adjust
func (h *InventoryHandler) AdjustToTarget(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.AdjustToTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.movementService.AdjustToTarget(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if resp == nil {
		h.NoContent(c)
		return
	}
	h.Created(c, resp)
}

// Return records material returned to stock from a document
// POST /api/v1/inventory/return
func (h *InventoryHandler) Return(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.movementService.Return(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetBalance returns the balance for an item-location combination.
// A combination without a balance row reads as a zero balance.
// GET /api/v1/inventory/balances/:itemId/:locationId
func (h *InventoryHandler) GetBalance(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}
	locationID, err := parseIDParam(c, "locationId")
	if err != nil {
		h.BadRequest(c, "Invalid location ID format")
		return
	}

	resp, err := h.movementService.GetBalance(c.Request.Context(), actor, itemID, locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListBalances lists stock balances with pagination and filtering
// GET /api/v1/inventory/balances
func (h *InventoryHandler) ListBalances(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter inventoryapp.BalanceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.movementService.ListBalances(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// TotalQuantity returns an item's total on-hand quantity across locations
// GET /api/v1/inventory/items/:itemId/total
func (h *InventoryHandler) TotalQuantity(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := parseIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	total, err := h.movementService.TotalQuantity(c.Request.Context(), actor, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"item_id": itemID, "total_quantity": total})
}

// GetMovement returns a single ledger movement
// GET /api/v1/inventory/movements/:id
func (h *InventoryHandler) GetMovement(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid movement ID format")
		return
	}

	resp, err := h.movementService.GetMovement(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListMovements lists ledger movements with pagination and filtering
// GET /api/v1/inventory/movements
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter inventoryapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.movementService.ListMovements(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// MovementsForReference lists all movements linked to a document
// GET /api/v1/inventory/movements/reference/:refType/:refId
func (h *InventoryHandler) MovementsForReference(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	refType := inventory.ReferenceType(c.Param("refType"))
	if !refType.IsValid() {
		h.BadRequest(c, "Invalid reference type")
		return
	}

	resp, err := h.movementService.MovementsForReference(c.Request.Context(), actor, refType, c.Param("refId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
