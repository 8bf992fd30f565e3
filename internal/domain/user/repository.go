package user

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access for user records.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	CountActive(ctx context.Context) (int64, error)
	ListActive(ctx context.Context) ([]User, error)
	ListFlagged(ctx context.Context) ([]User, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
	SetFlagged(ctx context.Context, id uuid.UUID, flagged bool) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a gorm-backed user repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *repository) ListActive(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_name asc").
		Find(&users).Error
	return users, err
}

func (r *repository) ListFlagged(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND is_flagged = ?", true, true).
		Order("flagged_at desc").
		Find(&users).Error
	return users, err
}

func (r *repository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *repository) SetFlagged(ctx context.Context, id uuid.UUID, flagged bool) error {
	updates := map[string]interface{}{"is_flagged": flagged}
	if flagged {
		updates["flagged_at"] = gorm.Expr("now()")
	} else {
		updates["flagged_at"] = nil
	}
	return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(updates).Error
}
