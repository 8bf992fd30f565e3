package checkin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines data access for check-in records.
type Repository interface {
	Upsert(ctx context.Context, c *Checkin) error
	GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*Checkin, error)
	ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Checkin, error)
	ListForPeriod(ctx context.Context, from, to time.Time) ([]Checkin, error)
	CountForPeriod(ctx context.Context, from, to time.Time) (int64, error)
	DailyCounts(ctx context.Context, from, to time.Time) ([]DateCount, error)
	SubmittedUserIDs(ctx context.Context, from, to time.Time) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed check-in repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert inserts the check-in, replacing a same-user same-day record if
// one already exists. A user gets at most one stored check-in per day.
func (r *repository) Upsert(ctx context.Context, c *Checkin) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "checkin_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"weather_type", "selected_moods", "presence_level",
			"capacity_level", "note", "ai_analysis", "ai_generated",
			"updated_at",
		}),
	}).Create(c).Error
}

func (r *repository) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*Checkin, error) {
	var c Checkin
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND checkin_date = ?", userID, date.Format("2006-01-02")).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Checkin, error) {
	var checkins []Checkin
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND checkin_date BETWEEN ? AND ?", userID, from, to).
		Order("checkin_date desc").
		Find(&checkins).Error
	return checkins, err
}

func (r *repository) ListForPeriod(ctx context.Context, from, to time.Time) ([]Checkin, error) {
	var checkins []Checkin
	err := r.db.WithContext(ctx).
		Where("checkin_date BETWEEN ? AND ?", from, to).
		Order("checkin_date asc").
		Find(&checkins).Error
	return checkins, err
}

func (r *repository) CountForPeriod(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Checkin{}).
		Where("checkin_date BETWEEN ? AND ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *repository) DailyCounts(ctx context.Context, from, to time.Time) ([]DateCount, error) {
	var counts []DateCount
	err := r.db.WithContext(ctx).Model(&Checkin{}).
		Select("checkin_date as date, count(*) as count").
		Where("checkin_date BETWEEN ? AND ?", from, to).
		Group("checkin_date").
		Order("checkin_date asc").
		Scan(&counts).Error
	return counts, err
}

func (r *repository) SubmittedUserIDs(ctx context.Context, from, to time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&Checkin{}).
		Distinct("user_id").
		Where("checkin_date BETWEEN ? AND ?", from, to).
		Pluck("user_id", &ids).Error
	return ids, err
}
