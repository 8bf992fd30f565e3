package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/netslayer67/mws-backend/internal/domain/analytics"
	"github.com/netslayer67/mws-backend/internal/domain/events"
	"github.com/netslayer67/mws-backend/internal/infrastructure/cache"
	"github.com/netslayer67/mws-backend/pkg/logger"
)

// Hours at which clients are nudged to re-fetch dashboard stats. The
// morning tick lands after most homeroom check-ins, the later ones
// catch staff submissions during the day.
var refreshHours = []int{8, 12, 16}

// Scheduler drives the daily dashboard roll-over: at midnight every
// cached stats entry refers to yesterday's window, so the cache is
// dropped and clients are told to re-fetch.
type Scheduler struct {
	redis  *cache.RedisClient
	logger *logger.Logger
}

func NewScheduler(redis *cache.RedisClient, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		redis:  redis,
		logger: logger,
	}
}

func (s *Scheduler) Start() {
	go s.scheduleRefreshTicks()

	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	untilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Dashboard scheduler initialized",
		zap.Time("current_time", now),
		zap.Time("next_rollover", nextMidnight),
		zap.Duration("time_until_rollover", untilMidnight),
	)

	go func() {
		time.Sleep(untilMidnight)
		s.runRollover()

		ticker := time.NewTicker(24 * time.Hour)
		for range ticker.C {
			s.runRollover()
		}
	}()
}

// runRollover invalidates all cached dashboard windows and announces
// the new day so connected clients re-fetch.
func (s *Scheduler) runRollover() {
	ctx := context.Background()
	start := time.Now()

	s.logger.Info("Starting dashboard roll-over", zap.Time("start_time", start))

	if err := s.redis.InvalidateDashboardCache(ctx); err != nil {
		s.logger.Error("Failed to invalidate dashboard cache", zap.Error(err))
	}

	event := &events.DashboardEvent{
		EventType: events.DashboardEventStatsUpdate,
		UserID:    uuid.Nil,
		Period:    analytics.PeriodToday,
		Timestamp: time.Now().UTC(),
		Details:   map[string]interface{}{"reason": "daily_rollover"},
	}
	if err := s.redis.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish roll-over event", zap.Error(err))
	}

	s.logger.Info("Completed dashboard roll-over",
		zap.Duration("duration", time.Since(start)))
}

func (s *Scheduler) scheduleRefreshTicks() {
	ticker := time.NewTicker(1 * time.Hour)
	for range ticker.C {
		currentHour := time.Now().Hour()
		for _, hour := range refreshHours {
			if currentHour == hour {
				s.publishRefresh()
				break
			}
		}
	}
}

func (s *Scheduler) publishRefresh() {
	ctx := context.Background()
	event := &events.DashboardEvent{
		EventType: events.DashboardEventStatsUpdate,
		UserID:    uuid.Nil,
		Timestamp: time.Now().UTC(),
		Details:   map[string]interface{}{"reason": "scheduled_refresh"},
	}
	if err := s.redis.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish scheduled refresh", zap.Error(err))
	} else {
		s.logger.Info("Published scheduled dashboard refresh")
	}
}
