package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/netslayer67/mws-backend/internal/domain/emotion"
)

// SubmitCheckinRequest is the check-in submission body.
type SubmitCheckinRequest struct {
	WeatherType   string          `json:"weather_type" binding:"required,oneof=sunny partly_sunny cloudy rainy storm"`
	SelectedMoods []string        `json:"selected_moods" binding:"required,min=1,dive,min=1"`
	PresenceLevel int             `json:"presence_level" binding:"required,min=1,max=10"`
	CapacityLevel int             `json:"capacity_level" binding:"required,min=1,max=10"`
	Note          string          `json:"note"`
	CheckinDate   string          `json:"checkin_date" binding:"omitempty,datetime=2006-01-02"`
	AIAnalysis    json.RawMessage `json:"ai_analysis,omitempty"`
	AIGenerated   bool            `json:"ai_generated"`
}

// CheckinResponse is a single stored check-in.
type CheckinResponse struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	CheckinDate   string          `json:"checkin_date"`
	WeatherType   string          `json:"weather_type"`
	SelectedMoods []string        `json:"selected_moods"`
	PresenceLevel int             `json:"presence_level"`
	CapacityLevel int             `json:"capacity_level"`
	Note          string          `json:"note,omitempty"`
	AIAnalysis    json.RawMessage `json:"ai_analysis,omitempty"`
	AIGenerated   bool            `json:"ai_generated"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EmotionAnalysisResponse wraps the interpreted detector output.
type EmotionAnalysisResponse struct {
	Analysis  emotion.AnalysisResult `json:"analysis"`
	Timestamp time.Time              `json:"timestamp"`
}
