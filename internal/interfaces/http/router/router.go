package router

import (
	"net/http"

	"github.com/fieldserv/backend/internal/infrastructure/auth"
	"github.com/fieldserv/backend/internal/interfaces/http/handler"
	"github.com/fieldserv/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the HTTP handlers wired into the router
type Handlers struct {
	Auth      *handler.AuthHandler
	Catalog   *handler.CatalogHandler
	Inventory *handler.InventoryHandler
	WorkOrder *handler.WorkOrderHandler
	Purchase  *handler.PurchaseHandler
}

// Config holds router dependencies
type Config struct {
	JWTService *auth.JWTService
	Handlers   Handlers
	// HealthCheck is invoked by GET /health; a non-nil error reports 503
	HealthCheck func() error
}

// Setup registers all routes on the engine. Authentication is enforced by the
// JWT middleware; authorization decisions live in the application services.
func Setup(engine *gin.Engine, cfg Config) {
	engine.GET("/health", healthHandler(cfg.HealthCheck))

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTService))

	api.GET("/health", healthHandler(cfg.HealthCheck))

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/login", cfg.Handlers.Auth.Login)
		authRoutes.POST("/refresh", cfg.Handlers.Auth.Refresh)
	}

	users := api.Group("/users")
	{
		users.POST("", cfg.Handlers.Auth.CreateUser)
		users.GET("", cfg.Handlers.Auth.ListUsers)
		users.PUT("/:id/role", cfg.Handlers.Auth.ChangeRole)
		users.DELETE("/:id", cfg.Handlers.Auth.DeactivateUser)
	}

	items := api.Group("/catalog/items")
	{
		items.POST("", cfg.Handlers.Catalog.CreateItem)
		items.GET("", cfg.Handlers.Catalog.ListItems)
		items.GET("/low-stock", cfg.Handlers.Catalog.ListBelowMinimum)
		items.GET("/:id", cfg.Handlers.Catalog.GetItem)
		items.PUT("/:id", cfg.Handlers.Catalog.UpdateItem)
		items.DELETE("/:id", cfg.Handlers.Catalog.DeactivateItem)
		items.POST("/:id/activate", cfg.Handlers.Catalog.ActivateItem)
	}

	locations := api.Group("/locations")
	{
		locations.POST("", cfg.Handlers.Catalog.CreateLocation)
		locations.GET("", cfg.Handlers.Catalog.ListLocations)
		locations.GET("/:id", cfg.Handlers.Catalog.GetLocation)
		locations.PUT("/:id", cfg.Handlers.Catalog.UpdateLocation)
		locations.DELETE("/:id", cfg.Handlers.Catalog.DeactivateLocation)
	}

	inventory := api.Group("/inventory")
	{
		inventory.POST("/stock-in", cfg.Handlers.Inventory.StockIn)
		inventory.POST("/stock-out", cfg.Handlers.Inventory.StockOut)
		inventory.POST("/transfer", cfg.Handlers.Inventory.Transfer)
		inventory.POST("/adjust", cfg.Handlers.Inventory.AdjustToTarget)
		inventory.POST("/return", cfg.Handlers.Inventory.Return)
		inventory.GET("/balances", cfg.Handlers.Inventory.ListBalances)
		inventory.GET("/balances/:itemId/:locationId", cfg.Handlers.Inventory.GetBalance)
		inventory.GET("/items/:itemId/total", cfg.Handlers.Inventory.TotalQuantity)
		inventory.GET("/movements", cfg.Handlers.Inventory.ListMovements)
		inventory.GET("/movements/reference/:refType/:refId", cfg.Handlers.Inventory.MovementsForReference)
		inventory.GET("/movements/:id", cfg.Handlers.Inventory.GetMovement)
	}

	workOrders := api.Group("/work-orders")
	{
		workOrders.POST("", cfg.Handlers.WorkOrder.Create)
		workOrders.GET("", cfg.Handlers.WorkOrder.List)
		workOrders.GET("/number/:number", cfg.Handlers.WorkOrder.GetByDocumentNumber)
		workOrders.GET("/:id", cfg.Handlers.WorkOrder.Get)
		workOrders.PUT("/:id", cfg.Handlers.WorkOrder.Update)
		workOrders.POST("/:id/transition", cfg.Handlers.WorkOrder.Transition)
		workOrders.POST("/:id/cancel", cfg.Handlers.WorkOrder.Cancel)
		workOrders.PUT("/:id/technician", cfg.Handlers.WorkOrder.AssignTechnician)
		workOrders.GET("/:id/lines", cfg.Handlers.WorkOrder.Lines)
		workOrders.POST("/:id/lines", cfg.Handlers.WorkOrder.AddLine)
		workOrders.PUT("/:id/lines/:lineId", cfg.Handlers.WorkOrder.UpdateLine)
		workOrders.DELETE("/:id/lines/:lineId", cfg.Handlers.WorkOrder.DeleteLine)
		workOrders.POST("/:id/lines/:lineId/return", cfg.Handlers.WorkOrder.ReturnLine)
		workOrders.POST("/:id/payments", cfg.Handlers.WorkOrder.RegisterPayment)
		workOrders.GET("/:id/payments", cfg.Handlers.WorkOrder.ListPayments)
		workOrders.GET("/:id/outstanding", cfg.Handlers.WorkOrder.OutstandingAmount)
		workOrders.POST("/:id/reconcile", cfg.Handlers.WorkOrder.Reconcile)
	}

	purchases := api.Group("/purchases")
	{
		purchases.POST("", cfg.Handlers.Purchase.Create)
		purchases.GET("", cfg.Handlers.Purchase.List)
		purchases.GET("/:id", cfg.Handlers.Purchase.Get)
		purchases.POST("/:id/receive", cfg.Handlers.Purchase.Receive)
		purchases.POST("/:id/cancel", cfg.Handlers.Purchase.Cancel)
	}
}

func healthHandler(check func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "unhealthy",
					"error":  err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
