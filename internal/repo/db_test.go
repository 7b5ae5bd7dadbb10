package repo

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tbourn/pugorugh-backend/internal/domain"
)

func TestOpen_Drivers(t *testing.T) {
	cases := []struct {
		name, driver, target string
		wantErr              string
	}{
		{"unknown driver", "oracle", "x", `unsupported DB_DRIVER "oracle"`},
		{"empty postgres dsn", " Postgres ", "  ", "DSN must not be empty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, err := Open(tc.driver, tc.target)
			if db != nil || err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Open(%q) = (%v, %v); want error containing %q", tc.driver, db, err, tc.wantErr)
			}
		})
	}

	for _, driver := range []string{"", "sqlite", " SQLITE "} {
		db, err := Open(driver, filepath.Join(t.TempDir(), "pugorugh.db"))
		if err != nil {
			t.Fatalf("Open(%q): %v", driver, err)
		}
		if name := db.Dialector.Name(); name != "sqlite" {
			t.Fatalf("Open(%q) dialector = %q", driver, name)
		}
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	}
}

func TestOpenSQLite_MissingDirectory(t *testing.T) {
	_, err := OpenSQLite(filepath.Join(t.TempDir(), "absent", "pugorugh.db"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v; want fs.ErrNotExist", err)
	}
}

func TestSQLiteDSN(t *testing.T) {
	const pragmas = "_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	for in, want := range map[string]string{
		"data/pugorugh.db":       "data/pugorugh.db?" + pragmas,
		"file:x.db?cache=shared": "file:x.db?cache=shared&" + pragmas,
	} {
		if got := sqliteDSN(in); got != want {
			t.Errorf("sqliteDSN(%q) = %q", in, got)
		}
	}
}

func TestOpenSQLite_PragmasAndPool(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "pugorugh.db"))
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	// synchronous NORMAL reads back as 1.
	pragmas := map[string]string{
		"journal_mode": "wal",
		"synchronous":  "1",
		"foreign_keys": "1",
		"busy_timeout": "5000",
	}
	conn, err := sqlDB.Conn(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	for name, want := range pragmas {
		var got string
		if err := conn.QueryRowContext(context.Background(), "PRAGMA "+name).Scan(&got); err != nil {
			t.Fatalf("PRAGMA %s: %v", name, err)
		}
		if strings.ToLower(got) != want {
			t.Errorf("PRAGMA %s = %q; want %q", name, got, want)
		}
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != sqlitePool.maxOpen {
		t.Errorf("max open = %d; want %d", got, sqlitePool.maxOpen)
	}
}

func TestAutoMigrate_IdempotentAndUsable(t *testing.T) {
	db := newTestDB(t)
	for i := 0; i < 2; i++ {
		if err := AutoMigrate(db); err != nil {
			t.Fatalf("AutoMigrate run %d: %v", i+1, err)
		}
	}
	for _, model := range migrateAll {
		if !db.Migrator().HasTable(model) {
			t.Errorf("missing table for %T", model)
		}
	}

	u := &domain.User{Username: "erin", PasswordHash: "x"}
	if err := db.Create(u).Error; err != nil {
		t.Fatal(err)
	}
	d := &domain.Dog{Name: "Rex", ImageFilename: "rex.jpg", Age: 10, Gender: "m", Size: "l"}
	if err := db.Create(d).Error; err != nil {
		t.Fatal(err)
	}
	row := &domain.Interaction{UserID: u.ID, DogID: d.ID, StatusCode: domain.StatusLiked.Code()}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("ledger insert across migrated tables: %v", err)
	}
}
