package analytics

import (
	"math"
	"time"
)

// Field names tried, in order, when extracting a calendar date from a
// timeline entry. Upstream sources have shipped every one of these.
var dateAccessors = []string{
	"date",
	"day",
	"timestamp",
	"periodDay",
	"period_date",
	"calendarDate",
	"checkinDate",
}

// Fallback workday counts per period when neither the timeline nor the
// period length yields anything usable.
var periodWorkdayDefaults = map[string]int{
	PeriodToday:    1,
	PeriodWeek:     5,
	PeriodMonth:    20,
	PeriodSemester: 88,
	PeriodAll:      20,
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
}

// parseDateValue converts a raw timeline value into a calendar date.
// Accepts time.Time, date strings in common layouts, and unix
// seconds/milliseconds.
func parseDateValue(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, !val.IsZero()
	case *time.Time:
		if val == nil || val.IsZero() {
			return time.Time{}, false
		}
		return *val, true
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, val); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case int64:
		return parseUnix(float64(val))
	case int:
		return parseUnix(float64(val))
	case float64:
		return parseUnix(val)
	default:
		return time.Time{}, false
	}
}

func parseUnix(v float64) (time.Time, bool) {
	if v <= 0 {
		return time.Time{}, false
	}
	// Millisecond timestamps are 13 digits; anything that large is
	// treated as millis.
	if v >= 1e12 {
		return time.UnixMilli(int64(v)).UTC(), true
	}
	return time.Unix(int64(v), 0).UTC(), true
}

// entryDate resolves the calendar date of a timeline entry by trying
// each known field name in order, then the bare entry value.
func entryDate(entry TimelineEntry) (time.Time, bool) {
	for _, key := range dateAccessors {
		if raw, ok := entry.Fields[key]; ok {
			if t, ok := parseDateValue(raw); ok {
				return t, true
			}
		}
	}
	if entry.Value != nil {
		return parseDateValue(entry.Value)
	}
	return time.Time{}, false
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ComputeWorkdayCount derives the number of workdays (Mon-Fri) covered
// by a period. Resolution order:
//
//  1. distinct weekday calendar days found in the timeline
//  2. the raw timeline length, when entries exist but none parse as
//     weekdays (deliberate better-than-nothing fallback; it does not
//     filter weekends)
//  3. periodLengthDays scaled by the 5/7 business-day ratio
//  4. a fixed default per period name
//
// The result is always >= 1 so downstream division is safe.
func ComputeWorkdayCount(timeline []TimelineEntry, periodLengthDays int, period string) int {
	seen := make(map[string]struct{})
	for _, entry := range timeline {
		t, ok := entryDate(entry)
		if !ok || isWeekend(t) {
			continue
		}
		seen[t.Format("2006-01-02")] = struct{}{}
	}
	if len(seen) > 0 {
		return len(seen)
	}

	if len(timeline) > 0 {
		return len(timeline)
	}

	if periodLengthDays > 0 {
		if n := int(math.Round(float64(periodLengthDays) * 5.0 / 7.0)); n > 1 {
			return n
		}
		return 1
	}

	if n, ok := periodWorkdayDefaults[period]; ok {
		return n
	}
	return 1
}
