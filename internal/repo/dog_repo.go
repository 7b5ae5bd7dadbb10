// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Dog
// catalog.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
//
// Ordering: every list is ordered by id ascending. The id order is the
// creation order and the only sequence the selector relies on.
package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/pugorugh-backend/internal/domain"
)

// CreateDogs inserts dogs in one batch and fills in their ids.
func CreateDogs(ctx context.Context, db *gorm.DB, dogs []domain.Dog) error {
	if len(dogs) == 0 {
		return nil
	}
	return db.WithContext(ctx).Omit(clause.Associations).Create(&dogs).Error
}

// CreateDog inserts a single dog.
func CreateDog(ctx context.Context, db *gorm.DB, d *domain.Dog) error {
	return db.WithContext(ctx).Create(d).Error
}

// GetDog fetches a dog by id, or ErrNotFound.
func GetDog(ctx context.Context, db *gorm.DB, id int64) (*domain.Dog, error) {
	var d domain.Dog
	if err := db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// DogExists reports whether a dog with id exists.
func DogExists(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Dog{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// CountDogs returns the catalog size.
func CountDogs(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Dog{}).Count(&n).Error
	return n, err
}

// ListDogsPage returns a page of the catalog ordered by id.
func ListDogsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Dog, error) {
	var out []domain.Dog
	err := db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListDogsByIDs returns the dogs with the given ids ordered by id.
func ListDogsByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]domain.Dog, error) {
	out := []domain.Dog{}
	if len(ids) == 0 {
		return out, nil
	}
	err := db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&out).Error
	return out, err
}

// UpdateBreedByName sets breed on every dog named name and returns the
// number of rows changed.
func UpdateBreedByName(ctx context.Context, db *gorm.DB, name, breed string) (int64, error) {
	res := db.WithContext(ctx).
		Model(&domain.Dog{}).
		Where("name = ?", name).
		Update("breed", breed)
	return res.RowsAffected, res.Error
}

// statusScope joins the caller's ledger rows and filters them by status.
// Undecided matches rows whose status column is NULL; a dog with no row at
// all never matches.
func statusScope(userID int64, st domain.Status) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		q = q.Joins("JOIN interactions ON interactions.dog_id = dogs.id AND interactions.user_id = ?", userID)
		if code := st.Code(); code != nil {
			return q.Where("interactions.status = ?", *code)
		}
		return q.Where("interactions.status IS NULL")
	}
}

// CountDogsByStatus counts the caller's dogs with status st.
func CountDogsByStatus(ctx context.Context, db *gorm.DB, userID int64, st domain.Status) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Dog{}).
		Scopes(statusScope(userID, st)).
		Count(&n).Error
	return n, err
}

// ListDogsByStatusPage returns a page of the caller's dogs with status st.
func ListDogsByStatusPage(ctx context.Context, db *gorm.DB, userID int64, st domain.Status, offset, limit int) ([]domain.Dog, error) {
	var out []domain.Dog
	err := db.WithContext(ctx).
		Model(&domain.Dog{}).
		Scopes(statusScope(userID, st)).
		Select("dogs.*").
		Order("dogs.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// NextDogQuery describes one next-dog lookup.
//
// When Preference is non-nil the candidate universe is restricted to dogs
// matching it; a preference with an empty set yields no candidate.
type NextDogQuery struct {
	UserID     int64
	Status     domain.Status
	Cursor     int64
	Preference *domain.Preference
}

// FindNextDog returns the lowest-id dog after the cursor whose ledger row for
// the user has the requested status, or ErrNotFound.
func FindNextDog(ctx context.Context, db *gorm.DB, q NextDogQuery) (*domain.Dog, error) {
	tx := db.WithContext(ctx).
		Model(&domain.Dog{}).
		Scopes(statusScope(q.UserID, q.Status)).
		Where("dogs.id > ?", q.Cursor)

	if p := q.Preference; p != nil {
		if p.MatchesNothing() {
			return nil, ErrNotFound
		}
		tx = tx.Where("dogs.gender IN ?", p.Genders()).
			Where("dogs.size IN ?", p.Sizes()).
			Where("dogs.age IN ?", p.AgeMonths())
	}

	var d domain.Dog
	if err := tx.Select("dogs.*").Order("dogs.id ASC").Take(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// ListUnseenDogIDs returns, in id order, every dog id with no ledger row for
// the user.
func ListUnseenDogIDs(ctx context.Context, db *gorm.DB, userID int64) ([]int64, error) {
	var ids []int64
	err := db.WithContext(ctx).
		Model(&domain.Dog{}).
		Where("NOT EXISTS (SELECT 1 FROM interactions i WHERE i.dog_id = dogs.id AND i.user_id = ?)", userID).
		Order("dogs.id ASC").
		Pluck("dogs.id", &ids).Error
	return ids, err
}
