package checkin

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/netslayer67/mws-backend/internal/domain/analytics"
	"github.com/netslayer67/mws-backend/internal/domain/events"
	"github.com/netslayer67/mws-backend/internal/domain/user"
)

// Mock repository for testing
type mockRepository struct {
	checkins []Checkin
	upserted *Checkin
}

func (m *mockRepository) Upsert(ctx context.Context, c *Checkin) error {
	m.upserted = c
	return nil
}

func (m *mockRepository) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*Checkin, error) {
	return nil, nil
}

func (m *mockRepository) ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Checkin, error) {
	var out []Checkin
	for _, c := range m.checkins {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepository) ListForPeriod(ctx context.Context, from, to time.Time) ([]Checkin, error) {
	return m.checkins, nil
}

func (m *mockRepository) CountForPeriod(ctx context.Context, from, to time.Time) (int64, error) {
	return int64(len(m.checkins)), nil
}

func (m *mockRepository) DailyCounts(ctx context.Context, from, to time.Time) ([]DateCount, error) {
	byDay := map[string]*DateCount{}
	var order []string
	for _, c := range m.checkins {
		key := c.CheckinDate.Format("2006-01-02")
		if _, ok := byDay[key]; !ok {
			byDay[key] = &DateCount{Date: c.CheckinDate}
			order = append(order, key)
		}
		byDay[key].Count++
	}
	out := make([]DateCount, 0, len(order))
	for _, key := range order {
		out = append(out, *byDay[key])
	}
	return out, nil
}

func (m *mockRepository) SubmittedUserIDs(ctx context.Context, from, to time.Time) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]struct{}{}
	var ids []uuid.UUID
	for _, c := range m.checkins {
		if _, ok := seen[c.UserID]; !ok {
			seen[c.UserID] = struct{}{}
			ids = append(ids, c.UserID)
		}
	}
	return ids, nil
}

// Mock user service for testing
type mockUserService struct {
	roster  []user.Ref
	flagged []user.Ref
	setFlag map[uuid.UUID]bool
}

func (m *mockUserService) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return nil, nil
}

func (m *mockUserService) CountActive(ctx context.Context) (int, error) {
	return len(m.roster), nil
}

func (m *mockUserService) ActiveRoster(ctx context.Context) ([]user.Ref, error) {
	return m.roster, nil
}

func (m *mockUserService) FlaggedRoster(ctx context.Context) ([]user.Ref, error) {
	return m.flagged, nil
}

func (m *mockUserService) SetFlagged(ctx context.Context, id uuid.UUID, flagged bool) error {
	if m.setFlag == nil {
		m.setFlag = map[uuid.UUID]bool{}
	}
	m.setFlag[id] = flagged
	return nil
}

// Mock publisher capturing emitted events
type mockPublisher struct {
	dashboard []*events.DashboardEvent
	personal  []*events.PersonalEvent
}

func (m *mockPublisher) PublishDashboardEvent(ctx context.Context, event *events.DashboardEvent) error {
	m.dashboard = append(m.dashboard, event)
	return nil
}

func (m *mockPublisher) PublishPersonalEvent(ctx context.Context, event *events.PersonalEvent) error {
	m.personal = append(m.personal, event)
	return nil
}

func newTestService(repo *mockRepository, users *mockUserService, pub *mockPublisher) Service {
	return NewService(repo, users, pub, zap.NewNop())
}

func TestSubmitValidation(t *testing.T) {
	svc := newTestService(&mockRepository{}, &mockUserService{}, &mockPublisher{})

	_, err := svc.Submit(context.Background(), SubmitInput{
		UserID:        uuid.New(),
		WeatherType:   "sleet",
		PresenceLevel: 5,
		CapacityLevel: 5,
	})
	assert.ErrorIs(t, err, ErrInvalidWeather)

	_, err = svc.Submit(context.Background(), SubmitInput{
		UserID:        uuid.New(),
		WeatherType:   WeatherSunny,
		PresenceLevel: 0,
		CapacityLevel: 5,
	})
	assert.ErrorIs(t, err, ErrInvalidLevel)

	_, err = svc.Submit(context.Background(), SubmitInput{
		UserID:        uuid.New(),
		WeatherType:   WeatherSunny,
		PresenceLevel: 5,
		CapacityLevel: 11,
	})
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestSubmitPersistsAndPublishes(t *testing.T) {
	repo := &mockRepository{}
	pub := &mockPublisher{}
	svc := newTestService(repo, &mockUserService{}, pub)

	userID := uuid.New()
	record, err := svc.Submit(context.Background(), SubmitInput{
		UserID:        userID,
		WeatherType:   WeatherRainy,
		SelectedMoods: []string{"sad", "tired"},
		PresenceLevel: 4,
		CapacityLevel: 3,
		Note:          "long week",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.upserted)

	assert.Equal(t, userID, record.UserID)
	assert.Equal(t, WeatherRainy, record.WeatherType)
	// Normalized to midnight UTC so the per-day unique index holds.
	assert.Equal(t, record.CheckinDate, truncateToDay(record.CheckinDate))

	require.Len(t, pub.dashboard, 1)
	assert.Equal(t, events.EventDashboardNewCheckin, pub.dashboard[0].EventType)
	require.Len(t, pub.personal, 1)
	assert.Equal(t, events.EventPersonalNewCheckin, pub.personal[0].EventType)
}

func TestBuildDashboardStats(t *testing.T) {
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()

	repo := &mockRepository{checkins: []Checkin{
		{UserID: alice, CheckinDate: monday, WeatherType: WeatherSunny, SelectedMoods: []string{"happy"}},
		{UserID: bob, CheckinDate: monday, WeatherType: WeatherRainy, SelectedMoods: []string{"sad", "tired"}, AIGenerated: true},
		{UserID: alice, CheckinDate: monday.AddDate(0, 0, 1), WeatherType: WeatherSunny, SelectedMoods: []string{"happy"}},
	}}
	users := &mockUserService{
		roster: []user.Ref{
			{ID: alice, DisplayName: "Alice", Unit: "Grade 7"},
			{ID: bob, DisplayName: "Bob", Unit: "Grade 8"},
			{ID: carol, DisplayName: "Carol", Unit: "Grade 7"},
		},
		flagged: []user.Ref{{ID: bob, DisplayName: "Bob", Unit: "Grade 8"}},
	}

	svc := newTestService(repo, users, &mockPublisher{})
	bundle, err := svc.BuildDashboardStats(context.Background(), analytics.PeriodWeek, monday)
	require.NoError(t, err)
	require.NotNil(t, bundle.Stats)

	stats := bundle.Stats
	assert.Equal(t, 3, stats.TotalUsers)
	assert.Equal(t, 3, stats.TotalCheckins)
	assert.Equal(t, 2, stats.MoodDistribution["happy"])
	assert.Equal(t, 1, stats.MoodDistribution["sad"])
	assert.Equal(t, 2, stats.WeatherDistribution[WeatherSunny])
	assert.True(t, bundle.AIMoods["sad"])
	assert.False(t, bundle.AIMoods["happy"])
	assert.Equal(t, []string{"happy", "sad", "tired"}, bundle.MoodOrder)

	require.Len(t, stats.UnitBreakdown, 2)
	assert.Equal(t, "Grade 7", stats.UnitBreakdown[0].Unit)
	assert.Equal(t, 2, stats.UnitBreakdown[0].Submitted)

	require.Len(t, stats.NotSubmittedUsers, 1)
	assert.Equal(t, "Carol", stats.NotSubmittedUsers[0].Name)
	require.Len(t, stats.FlaggedUsers, 1)
	assert.Equal(t, "Bob", stats.FlaggedUsers[0].Name)

	// Timeline feeds straight into the engine.
	assert.Len(t, stats.PeriodTimeline, 2)
	snap := analytics.BuildParticipationSnapshot(stats, analytics.PeriodWeek)
	require.NotNil(t, snap)
	assert.Equal(t, 2, snap.WorkdayCount)
	assert.Equal(t, 6, snap.ExpectedSubmissions)
	assert.Equal(t, 50, snap.ParticipationRate)
}

func TestFlagAndResolvePublishEvents(t *testing.T) {
	users := &mockUserService{}
	pub := &mockPublisher{}
	svc := newTestService(&mockRepository{}, users, pub)

	id := uuid.New()
	require.NoError(t, svc.FlagUser(context.Background(), id))
	require.NoError(t, svc.ResolveSupportRequest(context.Background(), id))

	assert.True(t, users.setFlag != nil)
	assert.False(t, users.setFlag[id])
	require.Len(t, pub.dashboard, 2)
	assert.Equal(t, events.EventUserFlagged, pub.dashboard[0].EventType)
	assert.Equal(t, events.EventSupportRequestHandled, pub.dashboard[1].EventType)
}

func TestPeriodRange(t *testing.T) {
	// Wednesday 2024-03-13.
	ref := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)

	from, to := PeriodRange(analytics.PeriodToday, ref)
	assert.Equal(t, "2024-03-13", from.Format("2006-01-02"))
	assert.Equal(t, from, to)

	from, to = PeriodRange(analytics.PeriodWeek, ref)
	assert.Equal(t, "2024-03-11", from.Format("2006-01-02"))
	assert.Equal(t, "2024-03-17", to.Format("2006-01-02"))

	from, to = PeriodRange(analytics.PeriodMonth, ref)
	assert.Equal(t, "2024-03-01", from.Format("2006-01-02"))
	assert.Equal(t, "2024-03-31", to.Format("2006-01-02"))

	from, to = PeriodRange(analytics.PeriodSemester, ref)
	assert.Equal(t, "2024-02-01", from.Format("2006-01-02"))
	assert.Equal(t, "2024-07-31", to.Format("2006-01-02"))

	// January belongs to the semester that started the previous August.
	from, to = PeriodRange(analytics.PeriodSemester, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2023-08-01", from.Format("2006-01-02"))
	assert.Equal(t, "2024-01-31", to.Format("2006-01-02"))

	from, to = PeriodRange("unknown", ref)
	assert.Equal(t, from, to)
}
