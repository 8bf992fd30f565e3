package migrations

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/netslayer67/mws-backend/internal/domain/checkin"
	"github.com/netslayer67/mws-backend/internal/domain/user"
	"github.com/netslayer67/mws-backend/internal/infrastructure/persistence/postgres/connection"
)

// MigrationRecord tracks the migration history
type MigrationRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null;unique"`
	Version   int       `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for migration records
func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *connection.Database, logger *zap.Logger) error {
	logger.Info("Starting automatic database migration...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		logger.Error("Failed to create UUID extension", zap.Error(err))
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	models := []interface{}{
		&MigrationRecord{},
		&user.User{},
		&checkin.Checkin{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			logger.Error("Migration failed", zap.Error(err))
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	if err := recordMigration(db.DB, "auto_migrate_core_models", 1); err != nil {
		logger.Warn("Could not record migration history", zap.Error(err))
	}

	logger.Info("Database migration completed successfully")
	return nil
}

func recordMigration(db *gorm.DB, name string, version int) error {
	var existing MigrationRecord
	err := db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return db.Create(&MigrationRecord{
		Name:      name,
		Version:   version,
		AppliedAt: time.Now().UTC(),
	}).Error
}
