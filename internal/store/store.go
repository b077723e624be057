// Package store is a generic record-store collaborator. Records are
// addressed by a key column and value rather than by query builders, which
// keeps callers independent of how collections are physically stored.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrRecordNotFound is returned when a keyed lookup matches no record.
var ErrRecordNotFound = errors.New("record not found")

// FindAll returns every record in T's collection.
func FindAll[T any](db *gorm.DB) ([]T, error) {
	var recs []T
	if err := db.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("store: find all %T: %w", recs, err)
	}
	return recs, nil
}

// FindWhere returns every record whose field column equals value.
func FindWhere[T any](db *gorm.DB, field string, value any) ([]T, error) {
	var recs []T
	if err := db.Where(map[string]any{field: value}).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("store: find %T where %s=%v: %w", recs, field, value, err)
	}
	return recs, nil
}

// FindOne returns the first record whose key column equals keyValue, or
// ErrRecordNotFound.
func FindOne[T any](db *gorm.DB, keyField string, keyValue any) (*T, error) {
	var rec T
	err := db.Where(map[string]any{keyField: keyValue}).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store: %s=%v: %w", keyField, keyValue, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("store: find one %s=%v: %w", keyField, keyValue, err)
	}
	return &rec, nil
}

// Create inserts a single record.
func Create[T any](db *gorm.DB, rec *T) error {
	if err := db.Create(rec).Error; err != nil {
		return fmt.Errorf("store: create %T: %w", rec, err)
	}
	return nil
}

// CreateMany inserts a batch of records. An empty batch is a no-op. The
// batch is not transactional across callers: a failure part-way leaves
// earlier rows in place.
func CreateMany[T any](db *gorm.DB, recs []T) error {
	if len(recs) == 0 {
		return nil
	}
	if err := db.Create(&recs).Error; err != nil {
		return fmt.Errorf("store: create %d records: %w", len(recs), err)
	}
	return nil
}

// Update merges fields into the record addressed by the key column. It
// fails with ErrRecordNotFound when no record matches; unnamed fields keep
// their stored values.
func Update[T any](db *gorm.DB, keyField string, keyValue any, fields map[string]any) error {
	var rec T
	err := db.Where(map[string]any{keyField: keyValue}).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("store: update %s=%v: %w", keyField, keyValue, ErrRecordNotFound)
		}
		return fmt.Errorf("store: update lookup %s=%v: %w", keyField, keyValue, err)
	}
	if err := db.Model(&rec).Updates(fields).Error; err != nil {
		return fmt.Errorf("store: update %s=%v: %w", keyField, keyValue, err)
	}
	return nil
}

// Delete removes the record addressed by the key column. Deleting a missing
// record fails with ErrRecordNotFound.
func Delete[T any](db *gorm.DB, keyField string, keyValue any) error {
	var rec T
	result := db.Where(map[string]any{keyField: keyValue}).Delete(&rec)
	if result.Error != nil {
		return fmt.Errorf("store: delete %s=%v: %w", keyField, keyValue, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("store: delete %s=%v: %w", keyField, keyValue, ErrRecordNotFound)
	}
	return nil
}
