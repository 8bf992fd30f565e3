package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dateEntry(key string, value interface{}) TimelineEntry {
	return TimelineEntry{Fields: map[string]interface{}{key: value}}
}

func TestComputeWorkdayCount(t *testing.T) {
	// 2024-01-01 is a Monday.
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name             string
		timeline         []TimelineEntry
		periodLengthDays int
		period           string
		expected         int
	}{
		{
			name:     "empty timeline falls back to period default",
			period:   PeriodWeek,
			expected: 5,
		},
		{
			name:     "unknown period defaults to 1",
			period:   "fortnight",
			expected: 1,
		},
		{
			name: "distinct weekdays counted once",
			timeline: []TimelineEntry{
				dateEntry("date", monday),
				dateEntry("date", monday), // duplicate day
				dateEntry("date", monday.AddDate(0, 0, 1)),
				dateEntry("date", monday.AddDate(0, 0, 2)),
			},
			period:   PeriodWeek,
			expected: 3,
		},
		{
			name: "weekends are discarded",
			timeline: []TimelineEntry{
				dateEntry("date", monday),
				dateEntry("date", monday.AddDate(0, 0, 5)), // Saturday
				dateEntry("date", monday.AddDate(0, 0, 6)), // Sunday
			},
			period:   PeriodWeek,
			expected: 1,
		},
		{
			name: "all-weekend timeline falls back to raw length",
			timeline: []TimelineEntry{
				dateEntry("date", monday.AddDate(0, 0, 5)),
				dateEntry("date", monday.AddDate(0, 0, 12)),
				dateEntry("date", monday.AddDate(0, 0, 19)),
			},
			period:   PeriodMonth,
			expected: 3,
		},
		{
			name: "unparseable entries fall back to raw length",
			timeline: []TimelineEntry{
				{Fields: map[string]interface{}{"label": "Day 1"}},
				{Fields: map[string]interface{}{"label": "Day 2"}},
			},
			period:   PeriodWeek,
			expected: 2,
		},
		{
			name:             "period length scaled by business-day ratio",
			periodLengthDays: 14,
			period:           "custom",
			expected:         10,
		},
		{
			name:             "tiny period length still floors at 1",
			periodLengthDays: 1,
			period:           "custom",
			expected:         1,
		},
		{
			name:     "semester default",
			period:   PeriodSemester,
			expected: 88,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeWorkdayCount(tt.timeline, tt.periodLengthDays, tt.period)
			assert.Equal(t, tt.expected, got)
			assert.GreaterOrEqual(t, got, 1, "workday count must never drop below 1")
		})
	}
}

func TestEntryDateFieldVariants(t *testing.T) {
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		entry TimelineEntry
	}{
		{"date field", dateEntry("date", "2024-01-01")},
		{"day field", dateEntry("day", "2024-01-01T08:30:00Z")},
		{"timestamp seconds", dateEntry("timestamp", int64(1704067200))},
		{"timestamp millis", dateEntry("timestamp", float64(1704067200000))},
		{"periodDay field", dateEntry("periodDay", monday)},
		{"snake case field", dateEntry("period_date", "2024/01/01")},
		{"bare string entry", TimelineEntry{Value: "2024-01-01"}},
		{"bare time entry", TimelineEntry{Value: monday}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := entryDate(tt.entry)
			assert.True(t, ok)
			assert.Equal(t, "2024-01-01", got.Format("2006-01-02"))
		})
	}
}

func TestEntryDateUnparseable(t *testing.T) {
	_, ok := entryDate(TimelineEntry{Fields: map[string]interface{}{"date": "not a date"}})
	assert.False(t, ok)

	_, ok = entryDate(TimelineEntry{})
	assert.False(t, ok)
}
