// Package store persists analysis snapshots in a local SQLite database.
package store

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kdelaney/ghostline/internal/models"
)

// Open opens (creating if needed) the snapshot database at path.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	return db, nil
}

// AllModels lists every table-backed model, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&models.Snapshot{},
	}
}

// AutoMigrate creates or updates all store tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// Reset drops and re-creates all store tables.
func Reset(db *gorm.DB) error {
	if err := db.Migrator().DropTable(AllModels()...); err != nil {
		return fmt.Errorf("store: drop tables: %w", err)
	}
	return AutoMigrate(db)
}
