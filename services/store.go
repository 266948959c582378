package services

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// findByID loads one row without associations
func findByID[T any](ctx context.Context, db *gorm.DB, id uint, entity string) (*T, error) {
	var row T
	if err := db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError(entity)
		}
		return nil, err
	}
	return &row, nil
}

// ensureExists returns NotFound when no row of T has the given id
func ensureExists[T any](ctx context.Context, db *gorm.DB, id uint, entity string) error {
	var count int64
	if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFoundError(entity)
	}
	return nil
}

// countWhere counts rows of T matching a condition
func countWhere[T any](ctx context.Context, db *gorm.DB, query string, args ...interface{}) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(new(T)).Where(query, args...).Count(&count).Error
	return count, err
}

// listAll returns every row of T ordered by id, with optional preloads
func listAll[T any](ctx context.Context, db *gorm.DB, preloads ...string) ([]T, error) {
	rows := []T{}
	q := db.WithContext(ctx).Order("id ASC")
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// saveRow writes the row's own columns; association fields never override foreign keys
func saveRow(ctx context.Context, db *gorm.DB, row interface{}, entity string) error {
	return translateDBError(db.WithContext(ctx).Omit(clause.Associations).Save(row).Error, entity)
}

// createRow inserts the row's own columns
func createRow(ctx context.Context, db *gorm.DB, row interface{}, entity string) error {
	return translateDBError(db.WithContext(ctx).Omit(clause.Associations).Create(row).Error, entity)
}

// deleteByID deletes one row, returning NotFound when nothing was removed
func deleteByID[T any](ctx context.Context, db *gorm.DB, id uint, entity string) error {
	result := db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return translateDBError(result.Error, entity)
	}
	if result.RowsAffected == 0 {
		return notFoundError(entity)
	}
	return nil
}
