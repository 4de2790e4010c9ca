// Package sql stores collections as rows of a single table through gorm.
// SQLite (pure Go driver) and PostgreSQL are supported.
package sql

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// collectionRow is one persisted collection.
type collectionRow struct {
	Name      string    `gorm:"primaryKey;size:64"`
	Version   int64     `gorm:"not null"`
	Data      string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (collectionRow) TableName() string { return "collections" }

// Open connects to the database and migrates the collections table.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite allows a single writer; one connection keeps :memory: databases shared.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the collections table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&collectionRow{}); err != nil {
		return fmt.Errorf("migrate collections: %w", err)
	}
	return nil
}
