package analytics

import (
	"math"
	"time"
)

// BuildParticipationSnapshot converts raw period stats into a
// normalized participation view. Returns nil when stats is nil; all
// other malformed input degrades to zeros rather than failing.
func BuildParticipationSnapshot(stats *DashboardStats, period string) *ParticipationSnapshot {
	if stats == nil {
		return nil
	}

	workdays := ComputeWorkdayCount(stats.PeriodTimeline, stats.PeriodLengthDays, period)
	expected := stats.TotalUsers * workdays

	rate := 0
	overSubmitted := false
	if expected > 0 {
		raw := int(math.Round(float64(stats.TotalCheckins) / float64(expected) * 100))
		overSubmitted = raw > 100
		// Display-sanity clamp: multiple check-ins per user per day can
		// push the raw rate past 100.
		rate = raw
		if rate > 100 {
			rate = 100
		}
	}

	notSubmitted := stats.NotSubmittedUsers
	notSubmittedCount := len(notSubmitted)
	if notSubmittedCount == 0 {
		estimate := stats.TotalUsers - int(math.Round(float64(stats.TotalCheckins)/float64(workdays)))
		if estimate < 0 {
			estimate = 0
		}
		notSubmittedCount = estimate
	}

	return &ParticipationSnapshot{
		TotalUsers:          stats.TotalUsers,
		TotalCheckins:       stats.TotalCheckins,
		WorkdayCount:        workdays,
		ExpectedSubmissions: expected,
		ParticipationRate:   rate,
		NotSubmittedUsers:   notSubmitted,
		NotSubmittedCount:   notSubmittedCount,
		FlaggedUsersCount:   len(stats.FlaggedUsers),
		OverSubmitted:       overSubmitted,
		Period:              period,
		LastUpdated:         time.Now().UTC(),
	}
}
