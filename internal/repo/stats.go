package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/pugorugh-backend/internal/domain"
)

// DogsStats returns the catalog size and the newest UpdatedAt among dogs,
// the inputs of the catalog ETag. latest is nil for an empty catalog.
func DogsStats(ctx context.Context, db *gorm.DB) (count int64, latest *time.Time, err error) {
	return freshness(db.WithContext(ctx).Model(&domain.Dog{}))
}

// InteractionsStats is DogsStats over the ledger rows of one user.
func InteractionsStats(ctx context.Context, db *gorm.DB, userID int64) (count int64, latest *time.Time, err error) {
	return freshness(db.WithContext(ctx).Model(&domain.Interaction{}).Where("user_id = ?", userID))
}

// freshness counts the rows matched by q and reads the newest updated_at.
// The timestamp is ordered and scanned rather than taken with MAX(), which
// SQLite returns as TEXT.
func freshness(q *gorm.DB) (int64, *time.Time, error) {
	var n int64
	if err := q.Session(&gorm.Session{}).Count(&n).Error; err != nil {
		return 0, nil, err
	}
	if n == 0 {
		return 0, nil, nil
	}
	var row struct{ UpdatedAt time.Time }
	if err := q.Session(&gorm.Session{}).Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return n, &row.UpdatedAt, nil
}
