package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/pugorugh-backend/internal/domain"
)

// newTestDB opens a per-test in-memory database. With no models it leaves the
// schema empty; pass migrateAll to get the full schema.
func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Unique DB per test to avoid schema leaking across tests.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
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
	// Serialize on one connection so PRAGMAs stick and shared-cache locks never trip.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db.Exec("PRAGMA foreign_keys=ON;")

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

var migrateAll = []any{
	&domain.User{}, &domain.AuthToken{}, &domain.Dog{},
	&domain.Preference{}, &domain.Interaction{}, &domain.Idempotency{},
}

func mustUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	u, err := CreateUser(context.Background(), db, name, "hash")
	if err != nil {
		t.Fatalf("CreateUser(%q): %v", name, err)
	}
	return u
}

func mustDogs(t *testing.T, db *gorm.DB, dogs ...domain.Dog) []domain.Dog {
	t.Helper()
	if err := CreateDogs(context.Background(), db, dogs); err != nil {
		t.Fatalf("CreateDogs: %v", err)
	}
	return dogs
}

func dog(name, gender, size string, age int) domain.Dog {
	return domain.Dog{Name: name, ImageFilename: strings.ToLower(name) + ".jpg", Gender: gender, Size: size, Age: age}
}
