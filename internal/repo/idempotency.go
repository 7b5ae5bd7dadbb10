package repo

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/pugorugh-backend/internal/domain"
)

// GetIdempotency returns the record for (userID, scope, key) that is still
// live at now, or ErrNotFound.
func GetIdempotency(ctx context.Context, db *gorm.DB, userID int64, scope, key string, now time.Time) (*domain.Idempotency, error) {
	if strings.TrimSpace(scope) == "" || key == "" {
		return nil, ErrNotFound
	}
	var rec domain.Idempotency
	err := db.WithContext(ctx).
		Where("user_id = ? AND scope = ? AND key = ? AND expires_at > ?", strconv.FormatInt(userID, 10), scope, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateIdempotency records the dogs produced under (userID, scope, key),
// live until now+ttl. An expired record for the same tuple is replaced; a
// live one yields ErrDuplicate.
func CreateIdempotency(ctx context.Context, db *gorm.DB, userID int64, scope, key string, dogIDs []int64, status int, now time.Time, ttl time.Duration) (*domain.Idempotency, error) {
	uid := strconv.FormatInt(userID, 10)
	rec := &domain.Idempotency{
		ID:        uuid.NewString(),
		UserID:    uid,
		Scope:     scope,
		Key:       key,
		DogIDs:    domain.JoinIDs(dogIDs),
		Status:    status,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND scope = ? AND key = ? AND expires_at <= ?", uid, scope, key, now).
			Delete(&domain.Idempotency{}).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, translateDuplicate(err)
	}
	return rec, nil
}

// PurgeExpiredIdempotency deletes every record that expired at or before now
// and reports how many were removed.
func PurgeExpiredIdempotency(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&domain.Idempotency{})
	return res.RowsAffected, res.Error
}
