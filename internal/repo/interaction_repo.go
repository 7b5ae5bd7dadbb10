// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the interaction ledger: one row per
// (user, dog) pair holding the user's decision.
//
// Error semantics:
//   - InsertInteraction returns ErrDuplicate when the pair already exists.
//   - UpsertInteraction never reports a duplicate; concurrent writers for the
//     same pair resolve last-write-wins inside a single statement.
//   - GetInteraction returns ErrNotFound when the pair has no row.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/pugorugh-backend/internal/domain"
)

// InsertInteraction creates a new ledger row for (userID, dogID).
func InsertInteraction(ctx context.Context, db *gorm.DB, userID, dogID int64, st domain.Status) (*domain.Interaction, error) {
	now := time.Now().UTC()
	row := &domain.Interaction{
		UserID:     userID,
		DogID:      dogID,
		StatusCode: st.Code(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return nil, translateDuplicate(err)
	}
	return row, nil
}

// UpsertInteraction sets the status of (userID, dogID), creating the row if
// needed, and returns the stored row.
func UpsertInteraction(ctx context.Context, db *gorm.DB, userID, dogID int64, st domain.Status) (*domain.Interaction, error) {
	now := time.Now().UTC()
	row := &domain.Interaction{
		UserID:     userID,
		DogID:      dogID,
		StatusCode: st.Code(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "dog_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}
	// Re-read: on conflict some drivers do not report the existing row id.
	return GetInteraction(ctx, db, userID, dogID)
}

// GetInteraction fetches the ledger row for (userID, dogID), or ErrNotFound.
func GetInteraction(ctx context.Context, db *gorm.DB, userID, dogID int64) (*domain.Interaction, error) {
	var row domain.Interaction
	err := db.WithContext(ctx).
		Where("user_id = ? AND dog_id = ?", userID, dogID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CountInteractions returns how many ledger rows exist for the user.
func CountInteractions(ctx context.Context, db *gorm.DB, userID int64) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Interaction{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
