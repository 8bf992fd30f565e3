package analytics

import (
	"time"

	"github.com/google/uuid"
)

// Period identifiers accepted by the dashboard endpoints.
const (
	PeriodToday    = "today"
	PeriodWeek     = "week"
	PeriodMonth    = "month"
	PeriodSemester = "semester"
	PeriodAll      = "all"
)

// TimelineEntry is a single raw timeline record from the stats source.
// Upstream payloads are inconsistent about how the calendar date is
// keyed, so Fields keeps the raw key/value pairs and Value keeps the
// entry itself when it arrived as a bare date/string/number.
type TimelineEntry struct {
	Fields map[string]interface{} `json:"fields,omitempty"`
	Value  interface{}            `json:"value,omitempty"`
}

// UserRef is a lightweight reference to a flagged user.
type UserRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Unit string    `json:"unit,omitempty"`
}

// UserProfile describes a user on the not-submitted roster.
type UserProfile struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
	Unit  string    `json:"unit,omitempty"`
	Role  string    `json:"role,omitempty"`
}

// UnitBreakdownEntry is the per-unit submission count.
type UnitBreakdownEntry struct {
	Unit      string `json:"unit"`
	Submitted int    `json:"submitted"`
}

// DashboardStats is the raw aggregate payload the engine consumes.
// All counts are expected to be non-negative; missing maps and slices
// are treated as empty.
type DashboardStats struct {
	TotalUsers          int                  `json:"total_users"`
	TotalCheckins       int                  `json:"total_checkins"`
	PeriodTimeline      []TimelineEntry      `json:"period_timeline"`
	PeriodLengthDays    int                  `json:"period_length_days"`
	MoodDistribution    map[string]int       `json:"mood_distribution"`
	WeatherDistribution map[string]int       `json:"weather_distribution"`
	UnitBreakdown       []UnitBreakdownEntry `json:"unit_breakdown"`
	FlaggedUsers        []UserRef            `json:"flagged_users"`
	NotSubmittedUsers   []UserProfile        `json:"not_submitted_users"`
}

// ParticipationSnapshot is the derived participation view for a period.
// Each computation produces a fresh value; snapshots are never mutated
// in place.
type ParticipationSnapshot struct {
	TotalUsers          int           `json:"total_users"`
	TotalCheckins       int           `json:"total_checkins"`
	WorkdayCount        int           `json:"workday_count"`
	ExpectedSubmissions int           `json:"expected_submissions"`
	ParticipationRate   int           `json:"participation_rate"`
	NotSubmittedUsers   []UserProfile `json:"not_submitted_users"`
	NotSubmittedCount   int           `json:"not_submitted_count"`
	FlaggedUsersCount   int           `json:"flagged_users_count"`
	// OverSubmitted is set when raw check-ins exceed the expected total.
	// The rate clamp at 100 hides over-submission (duplicate check-ins vs.
	// legitimate multiple submissions is not distinguishable here), so the
	// condition is surfaced instead of resolved.
	OverSubmitted bool      `json:"over_submitted"`
	Period        string    `json:"period"`
	LastUpdated   time.Time `json:"last_updated"`
}

// CategoryShare is one entry of a sorted category distribution.
type CategoryShare struct {
	Key         string `json:"key"`
	Count       int    `json:"count"`
	Percentage  int    `json:"percentage"`
	AIGenerated bool   `json:"ai_generated"`
}

// Indicator severity levels.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Indicator is a derived risk or positive signal for the dashboard.
type Indicator struct {
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}
