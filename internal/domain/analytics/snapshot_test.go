package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekdayTimeline(n int) []TimelineEntry {
	// 2024-01-01 is a Monday; step over weekends to keep every entry a
	// weekday.
	entries := make([]TimelineEntry, 0, n)
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for len(entries) < n {
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			entries = append(entries, dateEntry("date", day))
		}
		day = day.AddDate(0, 0, 1)
	}
	return entries
}

func TestBuildParticipationSnapshotNilStats(t *testing.T) {
	assert.Nil(t, BuildParticipationSnapshot(nil, PeriodWeek))
}

func TestBuildParticipationSnapshotMonth(t *testing.T) {
	stats := &DashboardStats{
		TotalUsers:     10,
		TotalCheckins:  40,
		PeriodTimeline: weekdayTimeline(20),
	}

	snap := BuildParticipationSnapshot(stats, PeriodMonth)
	require.NotNil(t, snap)

	assert.Equal(t, 20, snap.WorkdayCount)
	assert.Equal(t, 200, snap.ExpectedSubmissions)
	assert.Equal(t, 20, snap.ParticipationRate)
	assert.False(t, snap.OverSubmitted)
	assert.Equal(t, PeriodMonth, snap.Period)
	assert.False(t, snap.LastUpdated.IsZero())
}

func TestBuildParticipationSnapshotRateClamp(t *testing.T) {
	// Two check-ins per user per day: raw rate would be 200%.
	stats := &DashboardStats{
		TotalUsers:     5,
		TotalCheckins:  50,
		PeriodTimeline: weekdayTimeline(5),
	}

	snap := BuildParticipationSnapshot(stats, PeriodWeek)
	require.NotNil(t, snap)

	assert.Equal(t, 100, snap.ParticipationRate)
	assert.True(t, snap.OverSubmitted)
}

func TestBuildParticipationSnapshotZeroCheckins(t *testing.T) {
	stats := &DashboardStats{
		TotalUsers: 12,
	}

	snap := BuildParticipationSnapshot(stats, PeriodWeek)
	require.NotNil(t, snap)

	assert.Equal(t, 0, snap.ParticipationRate)
	assert.Equal(t, 5, snap.WorkdayCount)
	assert.Equal(t, 60, snap.ExpectedSubmissions)
	assert.Equal(t, 12, snap.NotSubmittedCount)
}

func TestBuildParticipationSnapshotZeroUsers(t *testing.T) {
	snap := BuildParticipationSnapshot(&DashboardStats{TotalCheckins: 3}, PeriodToday)
	require.NotNil(t, snap)

	assert.Equal(t, 0, snap.ParticipationRate)
	assert.Equal(t, 0, snap.ExpectedSubmissions)
	assert.Equal(t, 0, snap.NotSubmittedCount)
}

func TestBuildParticipationSnapshotRoster(t *testing.T) {
	roster := []UserProfile{
		{Name: "A", Unit: "Grade 7"},
		{Name: "B", Unit: "Grade 8"},
	}
	stats := &DashboardStats{
		TotalUsers:        10,
		TotalCheckins:     8,
		NotSubmittedUsers: roster,
		FlaggedUsers:      []UserRef{{Name: "C"}},
	}

	snap := BuildParticipationSnapshot(stats, PeriodToday)
	require.NotNil(t, snap)

	assert.Equal(t, 2, snap.NotSubmittedCount)
	assert.Equal(t, roster, snap.NotSubmittedUsers)
	assert.Equal(t, 1, snap.FlaggedUsersCount)
}

func TestBuildParticipationSnapshotEstimatesRoster(t *testing.T) {
	stats := &DashboardStats{
		TotalUsers:     10,
		TotalCheckins:  15,
		PeriodTimeline: weekdayTimeline(5),
	}

	snap := BuildParticipationSnapshot(stats, PeriodWeek)
	require.NotNil(t, snap)

	// round(15/5) = 3 submitted per day, so 7 estimated missing.
	assert.Equal(t, 7, snap.NotSubmittedCount)
}

func TestParticipationRateBounds(t *testing.T) {
	cases := []struct{ users, checkins int }{
		{0, 0}, {1, 0}, {0, 50}, {1, 1}, {3, 1000}, {1000, 3}, {50, 250},
	}
	for _, c := range cases {
		snap := BuildParticipationSnapshot(&DashboardStats{
			TotalUsers:    c.users,
			TotalCheckins: c.checkins,
		}, PeriodWeek)
		require.NotNil(t, snap)
		assert.GreaterOrEqual(t, snap.ParticipationRate, 0)
		assert.LessOrEqual(t, snap.ParticipationRate, 100)
		assert.GreaterOrEqual(t, snap.NotSubmittedCount, 0)
	}
}
