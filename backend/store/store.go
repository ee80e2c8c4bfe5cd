// Package store is the gorm-backed persistence layer: accounts, profiles,
// topics and the key-value settings table.
//
// Lookups return (nil, nil) when the row does not exist. Every exported
// method is a single atomic unit: either one SQL statement or one transaction.
package store

import (
	"coursework/backend/models"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Migrate creates or updates all tables.
func (s *Store) Migrate() error {
	return s.DB.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Teacher{},
		&models.Topic{},
		&models.SystemSetting{},
	)
}

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
