package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/netslayer67/mws-backend/internal/api/dto"
	"github.com/netslayer67/mws-backend/internal/domain/analytics"
	"github.com/netslayer67/mws-backend/internal/domain/checkin"
	"github.com/netslayer67/mws-backend/internal/domain/events"
	"github.com/netslayer67/mws-backend/internal/infrastructure/cache"
)

const dashboardCacheTTL = 5 * time.Minute

type DashboardHandler struct {
	checkinService checkin.Service
	redisClient    *cache.RedisClient
	logger         *zap.Logger
}

func NewDashboardHandler(
	checkinService checkin.Service,
	redisClient *cache.RedisClient,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		checkinService: checkinService,
		redisClient:    redisClient,
		logger:         logger,
	}
}

// GetDashboardStats returns the aggregated dashboard for a period.
// Query params: period (today|week|month|semester|all), date
// (YYYY-MM-DD reference day, default today), force (skip cache).
func (h *DashboardHandler) GetDashboardStats(c *gin.Context) {
	period := c.DefaultQuery("period", analytics.PeriodToday)
	ref := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		ref = parsed
	}
	force := c.Query("force") == "true"

	cacheKey := fmt.Sprintf("dashboard:stats:%s:%s", period, ref.Format("2006-01-02"))
	if !force {
		cachedData, err := h.redisClient.Get(c.Request.Context(), cacheKey)
		if err == nil && cachedData != "" {
			var response dto.DashboardStatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cachedData), &response); unmarshalErr == nil {
				c.JSON(http.StatusOK, gin.H{"data": response})
				return
			}
		}
	}

	bundle, err := h.checkinService.BuildDashboardStats(c.Request.Context(), period, ref)
	if err != nil {
		h.logger.Error("Failed to build dashboard stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard stats"})
		return
	}

	response := h.assembleResponse(bundle, period)

	if data, err := json.Marshal(response); err == nil {
		if err := h.redisClient.Set(c.Request.Context(), cacheKey, string(data), dashboardCacheTTL); err != nil {
			h.logger.Error("Failed to cache dashboard stats", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": response})
}

func (h *DashboardHandler) assembleResponse(bundle *checkin.StatsBundle, period string) dto.DashboardStatsResponse {
	stats := bundle.Stats
	snapshot := analytics.BuildParticipationSnapshot(stats, period)

	moodShares := analytics.Distribution(stats.MoodDistribution, bundle.MoodOrder, bundle.AIMoods)
	weatherShares := analytics.Distribution(stats.WeatherDistribution, bundle.WeatherOrder, nil)
	unitShares := analytics.UnitDistribution(stats.UnitBreakdown)

	flaggedPct := analytics.FlaggedPercentage(len(stats.FlaggedUsers), stats.TotalUsers)
	risks, positives := analytics.DeriveIndicators(flaggedPct, analytics.TopKeys(moodShares, 3))

	return dto.DashboardStatsResponse{
		Participation:       snapshot,
		MoodDistribution:    moodShares,
		WeatherDistribution: weatherShares,
		UnitBreakdown:       unitShares,
		RiskIndicators:      risks,
		PositiveIndicators:  positives,
		FlaggedUsers:        stats.FlaggedUsers,
		NotSubmittedUsers:   stats.NotSubmittedUsers,
		Period:              period,
		Timestamp:           time.Now().UTC(),
	}
}

// FlagUser marks a user as needing support and notifies dashboards.
func (h *DashboardHandler) FlagUser(c *gin.Context) {
	var req dto.FlagUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.checkinService.FlagUser(c.Request.Context(), userID); err != nil {
		h.logger.Error("Failed to flag user", zap.Error(err), zap.String("user_id", userID.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to flag user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"user_id": userID, "flagged": true}})
}

// ResolveSupportRequest clears a user's support flag.
func (h *DashboardHandler) ResolveSupportRequest(c *gin.Context) {
	var req dto.ResolveSupportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.checkinService.ResolveSupportRequest(c.Request.Context(), userID); err != nil {
		h.logger.Error("Failed to resolve support request", zap.Error(err), zap.String("user_id", userID.String()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve support request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"user_id": userID, "flagged": false}})
}

// StartDashboardEventListener starts listening for dashboard events
// and invalidates cached stats so the next fetch recomputes.
func (h *DashboardHandler) StartDashboardEventListener(ctx context.Context) {
	go func() {
		err := h.redisClient.SubscribeToDashboardEvents(ctx, func(event *events.DashboardEvent) error {
			h.logger.Info("Received dashboard event",
				zap.String("event_type", event.EventType),
				zap.String("user_id", event.UserID.String()))

			if err := h.redisClient.InvalidateDashboardCache(ctx); err != nil {
				h.logger.Error("Failed to invalidate dashboard cache",
					zap.Error(err),
					zap.String("event_type", event.EventType))
			}
			return nil
		})
		if err != nil {
			h.logger.Error("Dashboard event listener error", zap.Error(err))
		}
	}()
}
