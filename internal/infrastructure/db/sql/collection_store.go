package sql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/duckcorp/portal/internal/core/ports"
)

// CollectionStore implements ports.CollectionStore with one row per collection.
// The version column makes every save a compare-and-swap, which also holds
// across several processes sharing the database.
type CollectionStore struct {
	db *gorm.DB
}

func NewCollectionStore(db *gorm.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

func (s *CollectionStore) Load(ctx context.Context, name string) (ports.Record, error) {
	var row collectionRow
	err := s.db.WithContext(ctx).First(&row, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.Record{}, ports.ErrCollectionNotFound
	}
	if err != nil {
		return ports.Record{}, fmt.Errorf("load collection %s: %w", name, err)
	}
	return ports.Record{Data: []byte(row.Data), Version: row.Version}, nil
}

func (s *CollectionStore) Save(ctx context.Context, name string, data []byte, expected int64) (int64, error) {
	now := time.Now().UTC()
	db := s.db.WithContext(ctx)

	if expected == 0 {
		row := collectionRow{Name: name, Version: 1, Data: string(data), UpdatedAt: now}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			return 0, fmt.Errorf("insert collection %s: %w", name, res.Error)
		}
		if res.RowsAffected == 0 {
			return 0, ports.ErrVersionConflict
		}
		return 1, nil
	}

	res := db.Model(&collectionRow{}).
		Where("name = ? AND version = ?", name, expected).
		Updates(map[string]any{
			"version":    expected + 1,
			"data":       string(data),
			"updated_at": now,
		})
	if res.Error != nil {
		return 0, fmt.Errorf("update collection %s: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ports.ErrVersionConflict
	}
	return expected + 1, nil
}

func (s *CollectionStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
