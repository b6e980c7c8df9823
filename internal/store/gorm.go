package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"finfacil/internal/models"
)

// Gorm persists blobs in the kv_entries table of any GORM dialect.
type Gorm struct {
	db *gorm.DB
}

// NewGorm wraps db. The kv_entries table must already exist.
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// Load implements Store.
func (s *Gorm) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var entry models.KVEntry
	err := s.db.WithContext(ctx).Where("name = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("loading %q: %w", key, err)
	}
	return entry.Value, true, nil
}

// Save implements Store with an upsert on the key.
func (s *Gorm) Save(ctx context.Context, key string, blob []byte) error {
	entry := models.KVEntry{Key: key, Value: blob, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("saving %q: %w", key, err)
	}
	return nil
}
