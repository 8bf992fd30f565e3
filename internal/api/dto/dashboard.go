package dto

import (
	"time"

	"github.com/netslayer67/mws-backend/internal/domain/analytics"
)

// DashboardStatsResponse is the aggregated dashboard payload.
type DashboardStatsResponse struct {
	Participation       *analytics.ParticipationSnapshot `json:"participation"`
	MoodDistribution    []analytics.CategoryShare        `json:"mood_distribution"`
	WeatherDistribution []analytics.CategoryShare        `json:"weather_distribution"`
	UnitBreakdown       []analytics.CategoryShare        `json:"unit_breakdown"`
	RiskIndicators      []analytics.Indicator            `json:"risk_indicators"`
	PositiveIndicators  []analytics.Indicator            `json:"positive_indicators"`
	FlaggedUsers        []analytics.UserRef              `json:"flagged_users"`
	NotSubmittedUsers   []analytics.UserProfile          `json:"not_submitted_users"`
	Period              string                           `json:"period"`
	Timestamp           time.Time                        `json:"timestamp"`
}

// FlagUserRequest marks a user as needing support.
type FlagUserRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// ResolveSupportRequest clears a user's support flag.
type ResolveSupportRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}
