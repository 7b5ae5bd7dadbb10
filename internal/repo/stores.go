package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/pugorugh-backend/internal/domain"
)

// The Store types adapt the free functions of this package to the narrow
// repository interfaces declared by the services package. They carry no
// state; the *gorm.DB handle is passed per call so services control the
// transaction boundary.

// DogStore proxies the dog catalog functions.
type DogStore struct{}

// CreateDogs proxies CreateDogs.
func (DogStore) CreateDogs(ctx context.Context, db *gorm.DB, dogs []domain.Dog) error {
	return CreateDogs(ctx, db, dogs)
}

// GetDog proxies GetDog.
func (DogStore) GetDog(ctx context.Context, db *gorm.DB, id int64) (*domain.Dog, error) {
	return GetDog(ctx, db, id)
}

// DogExists proxies DogExists.
func (DogStore) DogExists(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	return DogExists(ctx, db, id)
}

// CountDogs proxies CountDogs.
func (DogStore) CountDogs(ctx context.Context, db *gorm.DB) (int64, error) {
	return CountDogs(ctx, db)
}

// ListDogsPage proxies ListDogsPage.
func (DogStore) ListDogsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Dog, error) {
	return ListDogsPage(ctx, db, offset, limit)
}

// ListDogsByIDs proxies ListDogsByIDs.
func (DogStore) ListDogsByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]domain.Dog, error) {
	return ListDogsByIDs(ctx, db, ids)
}

// UpdateBreedByName proxies UpdateBreedByName.
func (DogStore) UpdateBreedByName(ctx context.Context, db *gorm.DB, name, breed string) (int64, error) {
	return UpdateBreedByName(ctx, db, name, breed)
}

// CountDogsByStatus proxies CountDogsByStatus.
func (DogStore) CountDogsByStatus(ctx context.Context, db *gorm.DB, userID int64, st domain.Status) (int64, error) {
	return CountDogsByStatus(ctx, db, userID, st)
}

// ListDogsByStatusPage proxies ListDogsByStatusPage.
func (DogStore) ListDogsByStatusPage(ctx context.Context, db *gorm.DB, userID int64, st domain.Status, offset, limit int) ([]domain.Dog, error) {
	return ListDogsByStatusPage(ctx, db, userID, st, offset, limit)
}

// FindNextDog proxies FindNextDog.
func (DogStore) FindNextDog(ctx context.Context, db *gorm.DB, q NextDogQuery) (*domain.Dog, error) {
	return FindNextDog(ctx, db, q)
}

// ListUnseenDogIDs proxies ListUnseenDogIDs.
func (DogStore) ListUnseenDogIDs(ctx context.Context, db *gorm.DB, userID int64) ([]int64, error) {
	return ListUnseenDogIDs(ctx, db, userID)
}

// LedgerStore proxies the interaction ledger functions.
type LedgerStore struct{}

// InsertInteraction proxies InsertInteraction.
func (LedgerStore) InsertInteraction(ctx context.Context, db *gorm.DB, userID, dogID int64, st domain.Status) (*domain.Interaction, error) {
	return InsertInteraction(ctx, db, userID, dogID, st)
}

// UpsertInteraction proxies UpsertInteraction.
func (LedgerStore) UpsertInteraction(ctx context.Context, db *gorm.DB, userID, dogID int64, st domain.Status) (*domain.Interaction, error) {
	return UpsertInteraction(ctx, db, userID, dogID, st)
}

// GetInteraction proxies GetInteraction.
func (LedgerStore) GetInteraction(ctx context.Context, db *gorm.DB, userID, dogID int64) (*domain.Interaction, error) {
	return GetInteraction(ctx, db, userID, dogID)
}

// PreferenceStore proxies the preference functions.
type PreferenceStore struct{}

// GetOrCreatePreference proxies GetOrCreatePreference.
func (PreferenceStore) GetOrCreatePreference(ctx context.Context, db *gorm.DB, userID int64) (*domain.Preference, error) {
	return GetOrCreatePreference(ctx, db, userID)
}

// ReplacePreference proxies ReplacePreference.
func (PreferenceStore) ReplacePreference(ctx context.Context, db *gorm.DB, userID int64, gender, size, age string) error {
	return ReplacePreference(ctx, db, userID, gender, size, age)
}

// UserStore proxies the user and token functions.
type UserStore struct{}

// CreateUser proxies CreateUser.
func (UserStore) CreateUser(ctx context.Context, db *gorm.DB, username, passwordHash string) (*domain.User, error) {
	return CreateUser(ctx, db, username, passwordHash)
}

// GetUserByUsername proxies GetUserByUsername.
func (UserStore) GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	return GetUserByUsername(ctx, db, username)
}

// GetOrCreateToken proxies GetOrCreateToken.
func (UserStore) GetOrCreateToken(ctx context.Context, db *gorm.DB, userID int64, key string) (*domain.AuthToken, error) {
	return GetOrCreateToken(ctx, db, userID, key)
}

// GetToken proxies GetToken.
func (UserStore) GetToken(ctx context.Context, db *gorm.DB, key string) (*domain.AuthToken, error) {
	return GetToken(ctx, db, key)
}
