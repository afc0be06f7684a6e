package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/formpilot/autofill-backend/internal/config"
	"github.com/formpilot/autofill-backend/internal/models"
)

// Connect opens the PostgreSQL connection, configures the pool and runs
// migrations for all tables the pipeline touches.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap db: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema. Split out so tests can run it
// against an in-memory database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Identity{},
		&models.UserProfile{},
		&models.ProfilePersonal{},
		&models.ProfileEducation{},
		&models.ProfileExperience{},
		&models.ProfileProject{},
		&models.ProfileSkill{},
		&models.AutofillLog{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
