package storage

import (
	"errors"
	"fmt"

	"github.com/jared-cannon/app-registry/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLiteStore keeps slots in the storage_slots table
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore creates a store over an already opened database
func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenSQLite opens the database at path and runs migrations
func OpenSQLite(path string, config *gorm.Config) (*gorm.DB, error) {
	if config == nil {
		config = &gorm.Config{}
	}

	db, err := gorm.Open(sqlite.Open(path), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&models.StorageSlot{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Get returns the value stored under key
func (s *SQLiteStore) Get(key string) (string, error) {
	var slot models.StorageSlot
	if err := s.db.Where(&models.StorageSlot{Key: key}).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return slot.Value, nil
}

// Set overwrites the value stored under key
func (s *SQLiteStore) Set(key, value string) error {
	slot := models.StorageSlot{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}
