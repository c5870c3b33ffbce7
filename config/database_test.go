package config

import (
	"path/filepath"
	"testing"
)

func TestInitDatabaseMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapbooth.db")

	db, err := InitDatabase(path)
	if err != nil {
		t.Fatalf("InitDatabase: %v", err)
	}

	var version int
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version); err != nil {
		t.Fatal(err)
	}
	if want := Migrations[len(Migrations)-1].Version; version != want {
		t.Errorf("schema version = %d, want %d", version, want)
	}

	for _, column := range []string{"paper_size", "template_image", "photo_boxes"} {
		var n int
		if err := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('events') WHERE name = ?`, column).Scan(&n); err != nil {
			t.Fatal(err)
		}
		if n != 1 {
			t.Errorf("events.%s missing", column)
		}
	}
	db.Close()

	// Reopening must not re-apply column additions
	db, err = InitDatabase(path)
	if err != nil {
		t.Fatalf("second InitDatabase: %v", err)
	}
	defer db.Close()

	var applied int
	if err := db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied); err != nil {
		t.Fatal(err)
	}
	if applied != len(Migrations) {
		t.Errorf("applied %d migrations, want %d", applied, len(Migrations))
	}
}

func TestMigrationsOrdered(t *testing.T) {
	for i := 1; i < len(Migrations); i++ {
		if Migrations[i].Version <= Migrations[i-1].Version {
			t.Errorf("migration %d is not after %d", Migrations[i].Version, Migrations[i-1].Version)
		}
	}
}
