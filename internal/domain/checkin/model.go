package checkin

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Weather metaphor types a check-in can carry.
const (
	WeatherSunny       = "sunny"
	WeatherPartlySunny = "partly_sunny"
	WeatherCloudy      = "cloudy"
	WeatherRainy       = "rainy"
	WeatherStorm       = "storm"
)

// Checkin is one wellness record for a user on a calendar day.
type Checkin struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_checkin_user_day"`
	CheckinDate   time.Time       `json:"checkin_date" gorm:"type:date;not null;uniqueIndex:idx_checkin_user_day;index"`
	WeatherType   string          `json:"weather_type" gorm:"type:varchar(30);not null;index"`
	SelectedMoods pq.StringArray  `json:"selected_moods" gorm:"type:text[]"`
	PresenceLevel int             `json:"presence_level" gorm:"not null"`
	CapacityLevel int             `json:"capacity_level" gorm:"not null"`
	Note          string          `json:"note" gorm:"type:text"`
	AIAnalysis    json.RawMessage `json:"ai_analysis,omitempty" gorm:"type:jsonb"`
	AIGenerated   bool            `json:"ai_generated" gorm:"default:false"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Checkin model
func (Checkin) TableName() string {
	return "checkins"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (c *Checkin) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CheckinDate.IsZero() {
		c.CheckinDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	return nil
}

// SubmitInput is the payload for a new check-in.
type SubmitInput struct {
	UserID        uuid.UUID       `json:"user_id"`
	CheckinDate   time.Time       `json:"checkin_date"`
	WeatherType   string          `json:"weather_type"`
	SelectedMoods []string        `json:"selected_moods"`
	PresenceLevel int             `json:"presence_level"`
	CapacityLevel int             `json:"capacity_level"`
	Note          string          `json:"note"`
	AIAnalysis    json.RawMessage `json:"ai_analysis,omitempty"`
	AIGenerated   bool            `json:"ai_generated"`
}

// DateCount is a per-day submission count used for the period timeline.
type DateCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}
