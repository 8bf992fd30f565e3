package checkin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/netslayer67/mws-backend/internal/domain/analytics"
	"github.com/netslayer67/mws-backend/internal/domain/events"
	"github.com/netslayer67/mws-backend/internal/domain/user"
)

var (
	ErrInvalidWeather = errors.New("checkin: unknown weather type")
	ErrInvalidLevel   = errors.New("checkin: presence and capacity levels must be between 1 and 10")
)

var validWeather = map[string]bool{
	WeatherSunny:       true,
	WeatherPartlySunny: true,
	WeatherCloudy:      true,
	WeatherRainy:       true,
	WeatherStorm:       true,
}

// Publisher is the event side-channel used to invalidate dashboards
// and notify clients. The cache layer's redis client satisfies it.
type Publisher interface {
	PublishDashboardEvent(ctx context.Context, event *events.DashboardEvent) error
	PublishPersonalEvent(ctx context.Context, event *events.PersonalEvent) error
}

// StatsBundle carries the raw dashboard stats together with the
// insertion orders and AI markers the distribution computation needs.
type StatsBundle struct {
	Stats        *analytics.DashboardStats
	MoodOrder    []string
	WeatherOrder []string
	AIMoods      map[string]bool
}

// Service is the check-in domain facade.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*Checkin, error)
	PersonalHistory(ctx context.Context, userID uuid.UUID, period string, ref time.Time) ([]Checkin, error)
	BuildDashboardStats(ctx context.Context, period string, ref time.Time) (*StatsBundle, error)
	FlagUser(ctx context.Context, userID uuid.UUID) error
	ResolveSupportRequest(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo      Repository
	users     user.Service
	publisher Publisher
	logger    *zap.Logger
}

// NewService creates the check-in service.
func NewService(repo Repository, users user.Service, publisher Publisher, logger *zap.Logger) Service {
	return &service{
		repo:      repo,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*Checkin, error) {
	if !validWeather[input.WeatherType] {
		return nil, ErrInvalidWeather
	}
	if input.PresenceLevel < 1 || input.PresenceLevel > 10 ||
		input.CapacityLevel < 1 || input.CapacityLevel > 10 {
		return nil, ErrInvalidLevel
	}

	date := input.CheckinDate
	if date.IsZero() {
		date = time.Now().UTC()
	}
	date = truncateToDay(date)

	record := &Checkin{
		ID:            uuid.New(),
		UserID:        input.UserID,
		CheckinDate:   date,
		WeatherType:   input.WeatherType,
		SelectedMoods: input.SelectedMoods,
		PresenceLevel: input.PresenceLevel,
		CapacityLevel: input.CapacityLevel,
		Note:          input.Note,
		AIAnalysis:    input.AIAnalysis,
		AIGenerated:   input.AIGenerated,
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	s.publishDashboard(ctx, events.EventDashboardNewCheckin, input.UserID, record.ID, map[string]interface{}{
		"weather_type": record.WeatherType,
		"checkin_date": date.Format("2006-01-02"),
	})
	s.publishPersonal(ctx, events.EventPersonalNewCheckin, input.UserID, map[string]interface{}{
		"checkin_id": record.ID,
	})

	return record, nil
}

func (s *service) PersonalHistory(ctx context.Context, userID uuid.UUID, period string, ref time.Time) ([]Checkin, error) {
	from, to := PeriodRange(period, ref)
	return s.repo.ListByUser(ctx, userID, from, to)
}

// BuildDashboardStats aggregates the raw per-period numbers that feed
// the participation analytics engine. Aggregation failures on
// secondary data (rosters, breakdowns) degrade to empty values so the
// dashboard still renders.
func (s *service) BuildDashboardStats(ctx context.Context, period string, ref time.Time) (*StatsBundle, error) {
	from, to := PeriodRange(period, ref)

	checkins, err := s.repo.ListForPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	moodCounts := make(map[string]int)
	var moodOrder []string
	aiMoods := make(map[string]bool)
	weatherCounts := make(map[string]int)
	var weatherOrder []string
	unitCounts := make(map[string]int)
	var unitOrder []string
	submitted := make(map[uuid.UUID]struct{})

	profiles := s.rosterIndex(ctx)

	for _, c := range checkins {
		submitted[c.UserID] = struct{}{}

		if _, ok := weatherCounts[c.WeatherType]; !ok {
			weatherOrder = append(weatherOrder, c.WeatherType)
		}
		weatherCounts[c.WeatherType]++

		for _, mood := range c.SelectedMoods {
			if _, ok := moodCounts[mood]; !ok {
				moodOrder = append(moodOrder, mood)
			}
			moodCounts[mood]++
			if c.AIGenerated {
				aiMoods[mood] = true
			}
		}

		if prof, ok := profiles[c.UserID]; ok && prof.Unit != "" {
			if _, seen := unitCounts[prof.Unit]; !seen {
				unitOrder = append(unitOrder, prof.Unit)
			}
			unitCounts[prof.Unit]++
		}
	}

	timeline, err := s.periodTimeline(ctx, from, to)
	if err != nil {
		s.logger.Error("Failed to load period timeline", zap.Error(err))
		timeline = nil
	}

	flagged, err := s.users.FlaggedRoster(ctx)
	if err != nil {
		s.logger.Error("Failed to load flagged roster", zap.Error(err))
		flagged = nil
	}

	stats := &analytics.DashboardStats{
		TotalUsers:          totalUsers,
		TotalCheckins:       len(checkins),
		PeriodTimeline:      timeline,
		PeriodLengthDays:    int(to.Sub(from).Hours()/24) + 1,
		MoodDistribution:    moodCounts,
		WeatherDistribution: weatherCounts,
		UnitBreakdown:       unitBreakdown(unitCounts, unitOrder),
		FlaggedUsers:        flaggedRefs(flagged),
		NotSubmittedUsers:   s.notSubmitted(ctx, submitted),
	}

	return &StatsBundle{
		Stats:        stats,
		MoodOrder:    moodOrder,
		WeatherOrder: weatherOrder,
		AIMoods:      aiMoods,
	}, nil
}

func (s *service) FlagUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.SetFlagged(ctx, userID, true); err != nil {
		return err
	}
	s.publishDashboard(ctx, events.EventUserFlagged, userID, uuid.Nil, nil)
	return nil
}

func (s *service) ResolveSupportRequest(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.SetFlagged(ctx, userID, false); err != nil {
		return err
	}
	s.publishDashboard(ctx, events.EventSupportRequestHandled, userID, uuid.Nil, nil)
	return nil
}

func (s *service) periodTimeline(ctx context.Context, from, to time.Time) ([]analytics.TimelineEntry, error) {
	counts, err := s.repo.DailyCounts(ctx, from, to)
	if err != nil {
		return nil, err
	}
	entries := make([]analytics.TimelineEntry, 0, len(counts))
	for _, dc := range counts {
		entries = append(entries, analytics.TimelineEntry{
			Fields: map[string]interface{}{
				"date":  dc.Date,
				"count": dc.Count,
			},
		})
	}
	return entries, nil
}

// rosterIndex loads the active roster keyed by user id; failures yield
// an empty index rather than an error.
func (s *service) rosterIndex(ctx context.Context) map[uuid.UUID]user.Ref {
	roster, err := s.users.ActiveRoster(ctx)
	if err != nil {
		s.logger.Error("Failed to load active roster", zap.Error(err))
		return map[uuid.UUID]user.Ref{}
	}
	index := make(map[uuid.UUID]user.Ref, len(roster))
	for _, ref := range roster {
		index[ref.ID] = ref
	}
	return index
}

func (s *service) notSubmitted(ctx context.Context, submitted map[uuid.UUID]struct{}) []analytics.UserProfile {
	roster, err := s.users.ActiveRoster(ctx)
	if err != nil {
		s.logger.Error("Failed to load roster for not-submitted list", zap.Error(err))
		return nil
	}
	var missing []analytics.UserProfile
	for _, ref := range roster {
		if _, ok := submitted[ref.ID]; ok {
			continue
		}
		missing = append(missing, analytics.UserProfile{
			ID:    ref.ID,
			Name:  ref.DisplayName,
			Email: ref.Email,
			Unit:  ref.Unit,
			Role:  ref.Role,
		})
	}
	return missing
}

func (s *service) publishDashboard(ctx context.Context, eventType string, userID, entityID uuid.UUID, details map[string]interface{}) {
	event := &events.DashboardEvent{
		EventType: eventType,
		UserID:    userID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Details:   details,
	}
	if err := s.publisher.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish dashboard event",
			zap.Error(err),
			zap.String("event_type", eventType))
	}
}

func (s *service) publishPersonal(ctx context.Context, eventType string, userID uuid.UUID, details map[string]interface{}) {
	event := &events.PersonalEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Details:   details,
	}
	if err := s.publisher.PublishPersonalEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish personal event",
			zap.Error(err),
			zap.String("event_type", eventType))
	}
}

func unitBreakdown(counts map[string]int, order []string) []analytics.UnitBreakdownEntry {
	entries := make([]analytics.UnitBreakdownEntry, 0, len(order))
	for _, unit := range order {
		entries = append(entries, analytics.UnitBreakdownEntry{
			Unit:      unit,
			Submitted: counts[unit],
		})
	}
	return entries
}

func flaggedRefs(roster []user.Ref) []analytics.UserRef {
	refs := make([]analytics.UserRef, 0, len(roster))
	for _, r := range roster {
		refs = append(refs, analytics.UserRef{
			ID:   r.ID,
			Name: r.DisplayName,
			Unit: r.Unit,
		})
	}
	return refs
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PeriodRange resolves a period name and reference date into an
// inclusive calendar window. Unknown periods collapse to the single
// reference day.
func PeriodRange(period string, ref time.Time) (from, to time.Time) {
	if ref.IsZero() {
		ref = time.Now().UTC()
	}
	day := truncateToDay(ref)

	switch period {
	case analytics.PeriodWeek:
		// Monday-based week.
		offset := (int(day.Weekday()) + 6) % 7
		from = day.AddDate(0, 0, -offset)
		return from, from.AddDate(0, 0, 6)
	case analytics.PeriodMonth:
		from = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, -1)
	case analytics.PeriodSemester:
		// Two semesters: Feb-Jul and Aug-Jan.
		if day.Month() >= time.February && day.Month() <= time.July {
			from = time.Date(day.Year(), time.February, 1, 0, 0, 0, 0, time.UTC)
			return from, time.Date(day.Year(), time.July, 31, 0, 0, 0, 0, time.UTC)
		}
		year := day.Year()
		if day.Month() == time.January {
			year--
		}
		from = time.Date(year, time.August, 1, 0, 0, 0, 0, time.UTC)
		return from, time.Date(year+1, time.January, 31, 0, 0, 0, 0, time.UTC)
	case analytics.PeriodAll:
		return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), day
	default: // today and unknown periods
		return day, day
	}
}
