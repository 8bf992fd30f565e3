package events

import (
	"time"

	"github.com/google/uuid"
)

// Real-time event names pushed to connected clients. These match the
// channel contract the web client listens on.
const (
	EventDashboardUpdate       = "dashboard:update"
	EventDashboardNewCheckin   = "dashboard:new-checkin"
	EventUserFlagged           = "user:flagged"
	EventSupportRequestHandled = "support_request_handled"
	EventPersonalNewCheckin    = "personal:new-checkin"
)

// Internal dashboard event subtypes carried over the cache pub/sub
// channel.
const (
	DashboardEventStatsUpdate     = "stats_update"
	DashboardEventCacheInvalidate = "cache_invalidate"
)

// DashboardEvent is published whenever something changes that should
// invalidate cached dashboard stats or be pushed to clients.
type DashboardEvent struct {
	EventType string      `json:"event_type"`
	UserID    uuid.UUID   `json:"user_id"`
	EntityID  uuid.UUID   `json:"entity_id,omitempty"`
	Period    string      `json:"period,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Details   interface{} `json:"details,omitempty"`
}

// PersonalEvent is published to a single user's channel after their
// own check-in lands.
type PersonalEvent struct {
	EventType string      `json:"event_type"`
	UserID    uuid.UUID   `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Details   interface{} `json:"details,omitempty"`
}
