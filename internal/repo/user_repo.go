// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for users and
// their auth tokens.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/pugorugh-backend/internal/domain"
)

// CreateUser inserts a user. A taken username yields ErrDuplicate.
func CreateUser(ctx context.Context, db *gorm.DB, username, passwordHash string) (*domain.User, error) {
	u := &domain.User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, translateDuplicate(err)
	}
	return u, nil
}

// GetUserByUsername fetches a user by login name, or ErrNotFound.
func GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetOrCreateToken stores key as the user's token unless one already exists,
// and returns whichever token is stored.
func GetOrCreateToken(ctx context.Context, db *gorm.DB, userID int64, key string) (*domain.AuthToken, error) {
	tok := &domain.AuthToken{Key: key, UserID: userID, CreatedAt: time.Now().UTC()}
	err := db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(tok).Error
	if err != nil {
		return nil, err
	}
	var stored domain.AuthToken
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// GetToken fetches a token by key, or ErrNotFound.
func GetToken(ctx context.Context, db *gorm.DB, key string) (*domain.AuthToken, error) {
	var tok domain.AuthToken
	if err := db.WithContext(ctx).Where("key = ?", key).First(&tok).Error; err != nil {
		return nil, err
	}
	return &tok, nil
}
