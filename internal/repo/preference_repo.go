// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// per-user Preference row.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/pugorugh-backend/internal/domain"
)

// GetOrCreatePreference returns the user's preference, inserting an empty one
// first if none exists. Concurrent first calls converge on the same row.
func GetOrCreatePreference(ctx context.Context, db *gorm.DB, userID int64) (*domain.Preference, error) {
	now := time.Now().UTC()
	seed := &domain.Preference{UserID: userID, CreatedAt: now, UpdatedAt: now}
	err := db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(seed).Error
	if err != nil {
		return nil, err
	}
	return GetPreference(ctx, db, userID)
}

// GetPreference fetches the user's preference, or ErrNotFound.
func GetPreference(ctx context.Context, db *gorm.DB, userID int64) (*domain.Preference, error) {
	var p domain.Preference
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ReplacePreference overwrites the three code sets of the user's preference.
// The row must already exist.
func ReplacePreference(ctx context.Context, db *gorm.DB, userID int64, gender, size, age string) error {
	res := db.WithContext(ctx).
		Model(&domain.Preference{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"gender":     gender,
			"size":       size,
			"age":        age,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
