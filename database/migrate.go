package database

import (
	"fmt"

	"buddymatch_backend/internal/config"
	"buddymatch_backend/internal/logger"
	"buddymatch_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm initializes GORM with the DSN from config. TranslateError is
// required so unique-index violations surface as gorm.ErrDuplicatedKey.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates all models and creates the partial unique indexes
// that enforce pair uniqueness at the storage layer.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.PairScore{},
		&models.Proposal{},
		&models.Match{},
		&models.Message{},
		&models.CallSession{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	// AutoMigrate cannot express partial indexes, so these are raw SQL.
	// At most one open proposal and one active match per canonical pair;
	// closed/inactive rows are history and do not collide.
	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_proposals_open_pair
			ON proposals (user1_id, user2_id) WHERE NOT closed`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_matches_active_pair
			ON matches (user1_id, user2_id) WHERE active`,
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("index creation failed: %w", err)
		}
	}

	logger.Info("AutoMigrate completed")
	return nil
}
