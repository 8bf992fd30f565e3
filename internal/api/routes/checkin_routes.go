package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/netslayer67/mws-backend/internal/api/dto"
	"github.com/netslayer67/mws-backend/internal/api/handlers"
	"github.com/netslayer67/mws-backend/internal/api/middleware"
)

type CheckinRoutes struct {
	handler         *handlers.CheckinHandler
	authMiddleware  gin.HandlerFunc
	validation      *middleware.ValidationMiddleware
	cacheMiddleware gin.HandlerFunc
	logger          *zap.Logger
}

func NewCheckinRoutes(
	handler *handlers.CheckinHandler,
	authMiddleware gin.HandlerFunc,
	validation *middleware.ValidationMiddleware,
	cacheMiddleware gin.HandlerFunc,
	logger *zap.Logger,
) *CheckinRoutes {
	return &CheckinRoutes{
		handler:         handler,
		authMiddleware:  authMiddleware,
		validation:      validation,
		cacheMiddleware: cacheMiddleware,
		logger:          logger,
	}
}

func (r *CheckinRoutes) Register(router *gin.RouterGroup) {
	checkin := router.Group("/checkin")
	checkin.Use(r.authMiddleware)
	{
		checkin.POST("/submit", r.validation.ValidateRequest(dto.SubmitCheckinRequest{}), r.handler.Submit)
		checkin.POST("/emotion/analyze", r.handler.AnalyzeEmotion)
		checkin.GET("/history", r.cacheMiddleware, r.handler.History)
	}
}
