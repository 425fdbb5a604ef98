// Package kvrepo implements the key-value store port on top of a relational
// database using GORM. Values are opaque bytes in a single kv_records table
// keyed by the record name, so the schema never changes when the stored
// payload evolves.
package kvrepo

import (
	"context"
	"errors"

	"tracking/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ ports.KeyValueStore = (*GormKeyValueStore)(nil)

// KVRecordDTO represents one stored key-value pair.
type KVRecordDTO struct {
	Key       string `gorm:"primaryKey"`
	Value     []byte
	UpdatedAt int64 `gorm:"autoUpdateTime"`
}

// TableName specifies the database table name for key-value records.
func (KVRecordDTO) TableName() string {
	return "kv_records"
}

// GormKeyValueStore implements ports.KeyValueStore using GORM.
type GormKeyValueStore struct {
	db *gorm.DB
}

// NewGormKeyValueStore creates a new GORM-backed key-value store.
func NewGormKeyValueStore(db *gorm.DB) *GormKeyValueStore {
	return &GormKeyValueStore{db: db}
}

// Get retrieves the value stored under key.
func (s *GormKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var dto KVRecordDTO
	if err := s.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return dto.Value, true, nil
}

// Set stores value under key, overwriting any previous value (upsert).
func (s *GormKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	dto := KVRecordDTO{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}

// Remove deletes the value stored under key. Removing an absent key is a no-op.
func (s *GormKeyValueStore) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&KVRecordDTO{}, "key = ?", key).Error
}
