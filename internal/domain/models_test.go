package domain

import (
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One connection so the PRAGMA below applies to every statement.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB(): %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	// Enforce FKs so cascades actually execute.
	db.Exec("PRAGMA foreign_keys=ON;")
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(User{}).TableName():        "users",
		(AuthToken{}).TableName():   "auth_tokens",
		(Dog{}).TableName():         "dogs",
		(Preference{}).TableName():  "preferences",
		(Interaction{}).TableName(): "interactions",
		(Idempotency{}).TableName(): "idempotency",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestMigrations_Indexes_AndCascades(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&User{}, &AuthToken{}, &Dog{}, &Preference{}, &Interaction{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	if !m.HasIndex(&Interaction{}, "ux_interaction_user_dog") {
		t.Fatalf("expected unique index ux_interaction_user_dog on interactions")
	}
	if !m.HasIndex(&Preference{}, "ux_preference_user") {
		t.Fatalf("expected unique index ux_preference_user on preferences")
	}
	if !m.HasIndex(&User{}, "ux_users_username") {
		t.Fatalf("expected unique index ux_users_username on users")
	}

	u := &User{Username: "ann", PasswordHash: "x"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}
	d := &Dog{Name: "Muffin", ImageFilename: "3.jpg", Age: 24, Gender: "f", Size: "xl"}
	if err := db.Create(d).Error; err != nil {
		t.Fatalf("insert dog: %v", err)
	}
	liked := StatusLiked.Code()
	if err := db.Create(&Interaction{UserID: u.ID, DogID: d.ID, StatusCode: liked}).Error; err != nil {
		t.Fatalf("insert interaction: %v", err)
	}

	// Second row for the same pair violates the unique index.
	if err := db.Create(&Interaction{UserID: u.ID, DogID: d.ID}).Error; err == nil {
		t.Fatalf("expected unique violation for duplicate (user, dog)")
	}

	if err := db.Create(&Preference{UserID: u.ID, Gender: "f"}).Error; err != nil {
		t.Fatalf("insert preference: %v", err)
	}

	// Deleting the user cascades to its interactions and preference.
	if err := db.Delete(&User{}, u.ID).Error; err != nil {
		t.Fatalf("delete user: %v", err)
	}
	var n int64
	db.Model(&Interaction{}).Where("user_id = ?", u.ID).Count(&n)
	if n != 0 {
		t.Fatalf("expected interactions to cascade, found %d", n)
	}
	db.Model(&Preference{}).Where("user_id = ?", u.ID).Count(&n)
	if n != 0 {
		t.Fatalf("expected preference to cascade, found %d", n)
	}
}

func TestDog_AgeStage(t *testing.T) {
	tests := []struct {
		age  int
		want AgeStage
	}{
		{0, AgeBaby},
		{6, AgeBaby},
		{7, AgeYoung},
		{12, AgeYoung},
		{13, AgeAdult},
		{84, AgeAdult},
		{85, AgeSenior},
		{360, AgeSenior},
		{361, ""},
	}
	for _, tc := range tests {
		if got := (Dog{Age: tc.age}).AgeStage(); got != tc.want {
			t.Fatalf("Dog{Age:%d}.AgeStage() = %q; want %q", tc.age, got, tc.want)
		}
	}
}

func TestInteraction_StatusDecoding(t *testing.T) {
	if got := (Interaction{}).Status(); got != StatusUndecided {
		t.Fatalf("NULL status should decode as undecided, got %v", got)
	}
	if got := (Interaction{StatusCode: StatusDisliked.Code()}).Status(); got != StatusDisliked {
		t.Fatalf("expected disliked, got %v", got)
	}
}
