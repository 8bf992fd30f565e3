package routes

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/netslayer67/mws-backend/internal/api/handlers"
	"github.com/netslayer67/mws-backend/internal/api/middleware"
)

type RealtimeRoutes struct {
	handler        *handlers.RealtimeHandler
	authMiddleware gin.HandlerFunc
}

func NewRealtimeRoutes(
	handler *handlers.RealtimeHandler,
	authMiddleware gin.HandlerFunc,
) *RealtimeRoutes {
	return &RealtimeRoutes{
		handler:        handler,
		authMiddleware: authMiddleware,
	}
}

func (r *RealtimeRoutes) Register(router *gin.RouterGroup) {
	ws := router.Group("/ws")
	ws.Use(r.authMiddleware)
	{
		ws.GET("/dashboard", middleware.RequireStaff(), r.handler.HandleDashboardSocket)
		ws.GET("/personal", r.handler.HandlePersonalSocket)
	}

	// Bridge redis pub/sub onto the connected sockets
	r.handler.StartEventBridges(context.Background())
}
