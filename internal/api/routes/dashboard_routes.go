package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/netslayer67/mws-backend/internal/api/handlers"
	"github.com/netslayer67/mws-backend/internal/api/middleware"
)

type DashboardRoutes struct {
	handler        *handlers.DashboardHandler
	authMiddleware gin.HandlerFunc
	logger         *zap.Logger
}

func NewDashboardRoutes(
	handler *handlers.DashboardHandler,
	authMiddleware gin.HandlerFunc,
	logger *zap.Logger,
) *DashboardRoutes {
	return &DashboardRoutes{
		handler:        handler,
		authMiddleware: authMiddleware,
		logger:         logger,
	}
}

func (r *DashboardRoutes) Register(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	dashboard.Use(r.authMiddleware, middleware.RequireStaff())
	{
		dashboard.GET("/stats", r.handler.GetDashboardStats)
		dashboard.POST("/flag", r.handler.FlagUser)
		dashboard.POST("/resolve-support", r.handler.ResolveSupportRequest)
	}

	// Start the dashboard event listener
	go r.handler.StartDashboardEventListener(context.Background())
}
