package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stokku/backend/internal/infrastructure/auth"
	"github.com/stokku/backend/internal/infrastructure/logger"
	"github.com/stokku/backend/internal/interfaces/http/handler"
	"github.com/stokku/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles the HTTP handlers wired into the router
type Handlers struct {
	System       *handler.SystemHandler
	Stock        *handler.StockHandler
	History      *handler.HistoryHandler
	Alert        *handler.AlertHandler
	Staff        *handler.StaffHandler
	Subscription *handler.SubscriptionHandler
}

// Setup builds the gin engine with all middleware and routes. Health probes
// stay outside the authenticated group.
func Setup(log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	engine := gin.New()
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	engine.GET("/healthz", h.System.Health)
	engine.GET("/readyz", h.System.Ready)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuth(jwtService))

	stock := api.Group("/stock")
	{
		stock.POST("/inbound", h.Stock.Inbound)
		stock.POST("/outbound", h.Stock.Outbound)
		stock.POST("/opname", h.Stock.Opname)
	}

	history := api.Group("/history")
	{
		history.GET("/stock", h.History.Reconstruct)
		history.GET("/projections", h.History.ProjectStockOut)
		history.GET("/abc", h.History.ClassifyABC)
	}

	alerts := api.Group("/alerts")
	{
		alerts.POST("/regenerate", h.Alert.Regenerate)
		alerts.GET("", h.Alert.List)
		alerts.GET("/summary", h.Alert.Summary)
		alerts.GET("/expiring", h.Alert.ListExpiringBatches)
	}

	staff := api.Group("/staff")
	{
		staff.GET("/quota", h.Staff.Quota)
		staff.POST("", h.Staff.Invite)
		staff.POST("/:id/activate", h.Staff.Activate)
		staff.POST("/:id/deactivate", h.Staff.Deactivate)
	}

	api.PUT("/subscription/plan", h.Subscription.ChangePlan)

	return engine
}
