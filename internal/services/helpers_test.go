package services

import (
	"context"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/pugorugh-backend/internal/domain"
	"github.com/tbourn/pugorugh-backend/internal/repo"
)

// ---------- test helpers ----------

func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db.Exec("PRAGMA foreign_keys=ON;")

	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newUser(t *testing.T, db *gorm.DB, name string) int64 {
	t.Helper()
	u, err := repo.CreateUser(context.Background(), db, name, "x")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u.ID
}

func seedDogs(t *testing.T, db *gorm.DB, dogs ...domain.Dog) []domain.Dog {
	t.Helper()
	if err := repo.CreateDogs(context.Background(), db, dogs); err != nil {
		t.Fatalf("create dogs: %v", err)
	}
	return dogs
}

func mkDog(name, gender, size string, age int) domain.Dog {
	return domain.Dog{Name: name, ImageFilename: name + ".jpg", Gender: gender, Size: size, Age: age}
}

func newTestSelector(db *gorm.DB) *Selector {
	return NewSelector(db, repo.DogStore{}, repo.LedgerStore{}, repo.PreferenceStore{})
}
