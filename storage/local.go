package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// entry is one persisted key-value pair.
type entry struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt int64 `gorm:"autoUpdateTime:milli"`
}

func (entry) TableName() string { return "local_storage" }

// LocalStore persists key-value pairs in a SQLite file, the desktop
// equivalent of the browser's localStorage. Concurrent processes sharing
// the same file are last-write-wins, with no cross-process invalidation.
type LocalStore struct {
	db *gorm.DB
}

// OpenLocal opens (creating if needed) the store file at path and
// migrates its schema.
func OpenLocal(path string) (*LocalStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local store: %w", err)
	}

	return &LocalStore{db: db}, nil
}

func (s *LocalStore) Get(key string) (string, error) {
	var e entry
	if err := s.db.First(&e, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return e.Value, nil
}

func (s *LocalStore) Set(key, value string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry{Key: key, Value: value}).Error
}

func (s *LocalStore) Delete(key string) error {
	return s.db.Delete(&entry{}, "key = ?", key).Error
}

func (s *LocalStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
