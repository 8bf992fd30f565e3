package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles recognised by the platform.
const (
	RoleStudent = "student"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

// User is a staff or student account that submits check-ins.
type User struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	DisplayName string    `json:"display_name" gorm:"not null"`
	Role        string    `json:"role" gorm:"type:varchar(20);index;default:student"`
	Unit        string    `json:"unit" gorm:"type:varchar(80);index"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	IsFlagged   bool      `json:"is_flagged" gorm:"index;default:false"`
	FlaggedAt   *time.Time `json:"flagged_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Ref is a lightweight user reference used in rosters and flag lists.
type Ref struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Unit        string    `json:"unit"`
	Role        string    `json:"role"`
}

// ToRef converts a full user record into its roster reference.
func (u *User) ToRef() Ref {
	return Ref{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Unit:        u.Unit,
		Role:        u.Role,
	}
}
